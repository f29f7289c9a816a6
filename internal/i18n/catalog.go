package i18n

var catalog = map[Language]map[string]string{
	English: {
		"category.all":                 "Mixed Test",
		"category.traffic_rules":       "Traffic Rules",
		"category.road_signs":          "Road Signs",
		"category.first_aid":           "First Aid",
		"category.vehicle_maintenance": "Vehicle Maintenance",

		"tier.excellent":         "Excellent! Great result!",
		"tier.good":              "Good job! A little more practice will help.",
		"tier.average":           "Average. You need to study more.",
		"tier.needs improvement": "You should practice more.",

		"quiz.question":      "Question %d of %d",
		"quiz.correctSoFar":  "Correct so far: %d",
		"quiz.correct":       "Correct!",
		"quiz.incorrect":     "Incorrect.",
		"quiz.explanation":   "Explanation",
		"quiz.correctAnswer": "Correct answer",
		"quiz.next":          "Press Enter for the next question",
		"quiz.prompt":        "Your answer (or q to quit): ",
		"quiz.invalidOption": "Unknown option, try again.",
		"quiz.results":       "Test Results",
		"quiz.score":         "Score: %d%%",
		"quiz.totals":        "Total: %d  Correct: %d  Incorrect: %d",
		"quiz.review":        "Questions and Answers",
		"quiz.reviewCorrect": "Correct",
		"quiz.reviewWrong":   "Wrong",
		"quiz.again":         "Press r to restart or anything else to leave: ",
		"quiz.exited":        "Test ended.",

		"validation.required": "%s is required",
		"validation.email":    "Please enter a valid email",
		"validation.password": "Password must be at least 8 characters and contain letters and numbers",
		"validation.min":      "%s is too short",
		"validation.invalid":  "%s is invalid",
		"validation.username": "Username may only contain lowercase letters, digits, _ and .",
		"validation.eqfield":  "Passwords do not match",

		"auth.emailTaken":      "This email is already registered",
		"auth.loggedOut":       "Logged out",
		"auth.unauthenticated": "Please log in first",

		"field.Name":            "Name",
		"field.Email":           "Email",
		"field.Password":        "Password",
		"field.ConfirmPassword": "Password confirmation",
		"field.Username":        "Username",
		"field.PersonalNumber":  "Personal number",
	},
	Turkish: {
		"category.all":                 "Karışık Test",
		"category.traffic_rules":       "Trafik Kuralları",
		"category.road_signs":          "Trafik İşaretleri",
		"category.first_aid":           "İlk Yardım",
		"category.vehicle_maintenance": "Araç Bakımı",

		"tier.excellent":         "Mükemmel! Harika bir sonuç!",
		"tier.good":              "İyi iş! Biraz daha pratik yapabilirsiniz.",
		"tier.average":           "Ortalama. Daha fazla çalışmanız gerekiyor.",
		"tier.needs improvement": "Daha fazla pratik yapmalısınız.",

		"quiz.question":      "Soru %d / %d",
		"quiz.correctSoFar":  "Doğru cevap: %d",
		"quiz.correct":       "Doğru!",
		"quiz.incorrect":     "Yanlış.",
		"quiz.explanation":   "Açıklama",
		"quiz.correctAnswer": "Doğru Cevap",
		"quiz.next":          "Sonraki soru için Enter'a basın",
		"quiz.prompt":        "Cevabınız (çıkmak için q): ",
		"quiz.invalidOption": "Geçersiz seçenek, tekrar deneyin.",
		"quiz.results":       "Test Sonuçları",
		"quiz.score":         "Puan: %%%d",
		"quiz.totals":        "Toplam Soru: %d  Doğru Cevap: %d  Yanlış Cevap: %d",
		"quiz.review":        "Sorular ve Cevaplar",
		"quiz.reviewCorrect": "Doğru",
		"quiz.reviewWrong":   "Yanlış",
		"quiz.again":         "Yeniden başlatmak için r, çıkmak için başka bir tuş: ",
		"quiz.exited":        "Test sonlandırıldı.",

		"validation.required": "%s zorunludur",
		"validation.email":    "Lütfen geçerli bir e-posta girin",
		"validation.password": "Şifre en az 8 karakter olmalı ve harf ile rakam içermelidir.",
		"validation.min":      "%s çok kısa",
		"validation.invalid":  "%s geçersiz",
		"validation.username": "Kullanıcı adı yalnızca küçük harf, rakam, _ ve . içerebilir",
		"validation.eqfield":  "Şifreler eşleşmiyor",

		"auth.emailTaken":      "Bu e-posta adresi zaten kayıtlı",
		"auth.loggedOut":       "Çıkış yapıldı",
		"auth.unauthenticated": "Lütfen önce giriş yapın",

		"field.Name":            "Ad Soyad",
		"field.Email":           "E-posta",
		"field.Password":        "Şifre",
		"field.ConfirmPassword": "Şifre tekrarı",
		"field.Username":        "Kullanıcı adı",
		"field.PersonalNumber":  "Kimlik numarası",
	},
}
