package siteconfig

import "github.com/huntrbrooks/Money-sub001/internal/domain/models"

// DefaultPrimaryColor is the brand teal used when nothing is configured.
const DefaultPrimaryColor = "#6CA4AC"

// Defaults returns a fresh copy of the built-in document. Callers may
// modify the result freely.
func Defaults() models.SiteConfiguration {
	return models.SiteConfiguration{
		models.SectionMeta: map[string]interface{}{},
		models.SectionTheme: map[string]interface{}{
			"primary":     DefaultPrimaryColor,
			"accent":      "#E8B86D",
			"background":  "#FAF8F5",
			"text":        "#2F3A3D",
			"fontHeading": "Lora",
			"fontBody":    "Inter",
		},
		models.SectionSEO: map[string]interface{}{
			"title":       "Counselling & Psychotherapy",
			"description": "Confidential, compassionate counselling for individuals and couples, in person and online.",
			"keywords":    []interface{}{"counselling", "therapy", "mental health"},
		},
		models.SectionBrand: map[string]interface{}{
			"name":    "Counselling Practice",
			"tagline": "A calm space to talk",
			"logo":    "/uploads/logo.svg",
		},
		models.SectionNavigation: []interface{}{
			map[string]interface{}{"label": "Home", "href": "/"},
			map[string]interface{}{"label": "Services", "href": "/services"},
			map[string]interface{}{"label": "About", "href": "/about"},
			map[string]interface{}{"label": "Blog", "href": "/blog"},
			map[string]interface{}{"label": "Videos", "href": "/videos"},
			map[string]interface{}{"label": "Contact", "href": "/contact"},
		},
		models.SectionContact: map[string]interface{}{
			"phone":   "",
			"email":   "",
			"address": "",
			"hours":   "Mon–Fri, 9am–5pm",
		},
		models.SectionHero: map[string]interface{}{
			"title":    "You don't have to carry it alone",
			"subtitle": "Evidence-based counselling tailored to you.",
			"ctaLabel": "Book a consultation",
			"ctaHref":  "/contact",
		},
		models.SectionAbout: map[string]interface{}{
			"heading":        "About me",
			"body":           "",
			"qualifications": []interface{}{},
		},
		models.SectionServices: []interface{}{
			map[string]interface{}{
				"id":          "individual-counselling",
				"name":        "Individual Counselling",
				"description": "One-to-one sessions for anxiety, stress, grief and life transitions.",
				"price":       "$150",
				"duration":    "50 min",
			},
			map[string]interface{}{
				"id":          "couples-counselling",
				"name":        "Couples Counselling",
				"description": "Support for communication, conflict and reconnection.",
				"price":       "$190",
				"duration":    "75 min",
			},
		},
		models.SectionConsultationOptions: []interface{}{
			map[string]interface{}{"id": "in-person", "label": "In person"},
			map[string]interface{}{"id": "telehealth", "label": "Telehealth (video)"},
			map[string]interface{}{"id": "phone", "label": "Phone"},
		},
		models.SectionCrisisResources: []interface{}{
			map[string]interface{}{"name": "Emergency services", "phone": "000"},
			map[string]interface{}{"name": "Lifeline", "phone": "13 11 14"},
		},
		models.SectionForms: map[string]interface{}{
			"enquiry":    map[string]interface{}{"enabled": true, "title": "Make an enquiry"},
			"consent":    map[string]interface{}{"enabled": true, "title": "Consent form"},
			"intake":     map[string]interface{}{"enabled": true, "title": "Intake form"},
			"newsletter": map[string]interface{}{"enabled": false, "title": "Newsletter"},
		},
		models.SectionSocial: map[string]interface{}{
			"facebook":  "",
			"instagram": "",
			"linkedin":  "",
		},
	}
}
