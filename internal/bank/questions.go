package bank

import "driving-quiz-service/internal/domain"

var defaultQuestions = []domain.Question{
	{
		ID:   "1",
		Text: "What should you do when approaching a yellow traffic light?",
		Options: []domain.Option{
			{ID: "A", Text: "Speed up to get through before it turns red"},
			{ID: "B", Text: "Slow down and prepare to stop if it is safe"},
			{ID: "C", Text: "Ignore it and continue at normal speed"},
			{ID: "D", Text: "Stop immediately regardless of your position"},
		},
		CorrectOptionID: "B",
		Explanation:     "When approaching a yellow light you should slow down to stop if it is safe. Speeding up is dangerous and stopping abruptly can cause a rear-end collision.",
		Category:        domain.CategoryTrafficRules,
		Difficulty:      domain.DifficultyEasy,
	},
	{
		ID:   "2",
		Text: "What is the correct hand position on the steering wheel?",
		Options: []domain.Option{
			{ID: "A", Text: "One hand at 12 o'clock"},
			{ID: "B", Text: "Both hands at 10 and 2 o'clock"},
			{ID: "C", Text: "Both hands at 9 and 3 o'clock"},
			{ID: "D", Text: "One hand at 6 o'clock"},
		},
		CorrectOptionID: "C",
		Explanation:     "The 9 and 3 position keeps the hands on opposite sides of the wheel, which gives the best control and stability and lowers the risk of injury if the airbag deploys.",
		Category:        domain.CategoryTrafficRules,
		Difficulty:      domain.DifficultyEasy,
	},
	{
		ID:   "3",
		Text: "When should you check your vehicle's tyre pressure?",
		Options: []domain.Option{
			{ID: "A", Text: "Only during the annual inspection"},
			{ID: "B", Text: "Only when the tyres look flat"},
			{ID: "C", Text: "Monthly and before long trips"},
			{ID: "D", Text: "Only in winter"},
		},
		CorrectOptionID: "C",
		Explanation:     "Check tyre pressure monthly and before long trips while the tyres are cold. Correct pressure improves fuel efficiency, extends tyre life and gives better grip and safety.",
		Category:        domain.CategoryVehicleMaintenance,
		Difficulty:      domain.DifficultyMedium,
	},
	{
		ID:   "4",
		Text: "What should you do first when you find an unconscious person at an accident scene?",
		Options: []domain.Option{
			{ID: "A", Text: "Move them to a more comfortable position"},
			{ID: "B", Text: "Check whether they are breathing and have a pulse"},
			{ID: "C", Text: "Give them water"},
			{ID: "D", Text: "Start CPR immediately"},
		},
		CorrectOptionID: "B",
		Explanation:     "Always check breathing and pulse first; that assessment decides the next step. Moving an injured person can worsen spinal injuries and CPR is only given when there is no pulse.",
		Category:        domain.CategoryFirstAid,
		Difficulty:      domain.DifficultyHard,
	},
	{
		ID:   "5",
		Text: "What does a round blue sign with a white arrow indicate?",
		Options: []domain.Option{
			{ID: "A", Text: "One-way road"},
			{ID: "B", Text: "Mandatory direction to follow"},
			{ID: "C", Text: "Suggested route"},
			{ID: "D", Text: "Motorway entrance"},
		},
		CorrectOptionID: "B",
		Explanation:     "A round blue sign with a white arrow shows a mandatory direction. It belongs to the regulatory signs that tell drivers which action is required.",
		Category:        domain.CategoryRoadSigns,
		Difficulty:      domain.DifficultyMedium,
	},
}
