package vocab

// builtinVocabularies 内置的四个领域词表
// 这些是默认值，可通过 Registry.LoadDir 用外部 YAML 覆盖，不是硬编码分支
func builtinVocabularies() []*DomainVocabulary {
	return []*DomainVocabulary{
		itVocabulary(),
		mechanicalVocabulary(),
		healthcareVocabulary(),
		financeVocabulary(),
	}
}

func itVocabulary() *DomainVocabulary {
	return &DomainVocabulary{
		Domain: "it",
		Skills: []string{
			"Go", "Java", "Python", "JavaScript", "TypeScript", "C++", "C#", "Rust",
			"React", "Vue", "Angular", "Node.js", "Spring Boot", "Django",
			"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
			"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Terraform",
			"Linux", "Git", "CI/CD", "Kafka", "RabbitMQ", "gRPC", "REST",
			"Machine Learning", "Data Analysis",
		},
		Aliases: map[string]string{
			"golang":        "Go",
			"js":            "JavaScript",
			"javascript es6": "JavaScript",
			"ts":            "TypeScript",
			"reactjs":       "React",
			"react.js":      "React",
			"vuejs":         "Vue",
			"vue.js":        "Vue",
			"angularjs":     "Angular",
			"node":          "Node.js",
			"nodejs":        "Node.js",
			"springboot":    "Spring Boot",
			"spring":        "Spring Boot",
			"postgres":      "PostgreSQL",
			"psql":          "PostgreSQL",
			"mongo":         "MongoDB",
			"es":            "Elasticsearch",
			"k8s":           "Kubernetes",
			"amazon web services": "AWS",
			"google cloud":  "GCP",
			"ml":            "Machine Learning",
			"cpp":           "C++",
			"c plus plus":   "C++",
			"csharp":        "C#",
			"ci cd":         "CI/CD",
			"cicd":          "CI/CD",
		},
		Roles: []RoleDefinition{
			{
				Name: "Backend Developer",
				Skills: map[string]float64{
					"Go": 3, "Java": 3, "Python": 2, "Spring Boot": 2, "Node.js": 2,
					"SQL": 2, "MySQL": 1, "PostgreSQL": 1, "Redis": 1, "Kafka": 1,
					"gRPC": 1, "REST": 1, "Docker": 1,
				},
				TitleKeywords: []string{"backend", "back-end", "back end", "server", "software engineer", "software developer"},
				TitleBonus:    3,
			},
			{
				Name: "Frontend Developer",
				Skills: map[string]float64{
					"JavaScript": 3, "TypeScript": 3, "React": 3, "Vue": 2, "Angular": 2,
					"Node.js": 1, "CI/CD": 1, "Git": 1,
				},
				TitleKeywords: []string{"frontend", "front-end", "front end", "ui developer", "web developer"},
				TitleBonus:    3,
			},
			{
				Name: "DevOps Engineer",
				Skills: map[string]float64{
					"Docker": 3, "Kubernetes": 3, "AWS": 2, "Azure": 2, "GCP": 2,
					"Terraform": 2, "Linux": 2, "CI/CD": 2, "Git": 1,
				},
				TitleKeywords: []string{"devops", "sre", "site reliability", "infrastructure", "platform engineer"},
				TitleBonus:    3,
			},
			{
				Name: "Data Engineer",
				Skills: map[string]float64{
					"Python": 3, "SQL": 3, "Kafka": 2, "Elasticsearch": 1,
					"Machine Learning": 2, "Data Analysis": 2, "MongoDB": 1, "AWS": 1,
				},
				TitleKeywords: []string{"data engineer", "data scientist", "analytics", "machine learning"},
				TitleBonus:    3,
			},
		},
		DegreeKeywords: []string{
			"bachelor", "master", "phd", "b.tech", "m.tech", "b.sc", "m.sc", "b.e.",
			"mba", "diploma", "computer science", "information technology", "engineering",
		},
		CertKeywords: []string{
			"aws certified", "azure", "cka", "ckad", "ocp", "pmp", "scrum",
			"certified", "certificate", "certification",
		},
	}
}

func mechanicalVocabulary() *DomainVocabulary {
	return &DomainVocabulary{
		Domain: "mechanical",
		Skills: []string{
			"AutoCAD", "SolidWorks", "CATIA", "Creo", "ANSYS", "Finite Element Analysis",
			"CAD", "CAM", "CNC Machining", "GD&T", "Thermodynamics", "Fluid Mechanics",
			"Heat Transfer", "Sheet Metal Design", "Injection Molding", "Lean Manufacturing",
			"Six Sigma", "MATLAB", "Product Design", "Quality Control",
		},
		Aliases: map[string]string{
			"fea":           "Finite Element Analysis",
			"finite element": "Finite Element Analysis",
			"auto cad":      "AutoCAD",
			"autocad 2d":    "AutoCAD",
			"solid works":   "SolidWorks",
			"pro/e":         "Creo",
			"pro engineer":  "Creo",
			"cnc":           "CNC Machining",
			"gdt":           "GD&T",
			"gd and t":      "GD&T",
			"qc":            "Quality Control",
		},
		Roles: []RoleDefinition{
			{
				Name: "Mechanical Design Engineer",
				Skills: map[string]float64{
					"SolidWorks": 3, "AutoCAD": 3, "CATIA": 2, "Creo": 2, "CAD": 2,
					"GD&T": 2, "Sheet Metal Design": 1, "Product Design": 2,
				},
				TitleKeywords: []string{"design engineer", "mechanical engineer", "product engineer"},
				TitleBonus:    3,
			},
			{
				Name: "CAE Analyst",
				Skills: map[string]float64{
					"ANSYS": 3, "Finite Element Analysis": 3, "MATLAB": 2,
					"Thermodynamics": 2, "Fluid Mechanics": 2, "Heat Transfer": 2,
				},
				TitleKeywords: []string{"cae", "simulation", "analyst", "analysis engineer"},
				TitleBonus:    3,
			},
			{
				Name: "Manufacturing Engineer",
				Skills: map[string]float64{
					"CNC Machining": 3, "CAM": 2, "Lean Manufacturing": 2, "Six Sigma": 2,
					"Injection Molding": 2, "Quality Control": 2, "GD&T": 1,
				},
				TitleKeywords: []string{"manufacturing", "production", "process engineer"},
				TitleBonus:    3,
			},
		},
		DegreeKeywords: []string{
			"bachelor", "master", "b.tech", "m.tech", "b.e.", "diploma",
			"mechanical engineering", "production engineering",
		},
		CertKeywords: []string{
			"six sigma", "certified", "solidworks certified", "cswa", "cswp", "certification",
		},
	}
}

func healthcareVocabulary() *DomainVocabulary {
	return &DomainVocabulary{
		Domain: "healthcare",
		Skills: []string{
			"Patient Care", "Nursing", "Phlebotomy", "CPR", "ICU", "Emergency Care",
			"Electronic Medical Records", "Epic", "Medication Administration",
			"Vital Signs Monitoring", "Clinical Documentation", "Infection Control",
			"Medical Coding", "HIPAA Compliance", "Telemetry",
		},
		Aliases: map[string]string{
			"emr":            "Electronic Medical Records",
			"ehr":            "Electronic Medical Records",
			"bls":            "CPR",
			"acls":           "Emergency Care",
			"intensive care": "ICU",
			"med admin":      "Medication Administration",
			"icd-10":         "Medical Coding",
			"hipaa":          "HIPAA Compliance",
		},
		Roles: []RoleDefinition{
			{
				Name: "Registered Nurse",
				Skills: map[string]float64{
					"Nursing": 3, "Patient Care": 3, "Medication Administration": 2,
					"ICU": 2, "CPR": 2, "Vital Signs Monitoring": 1, "Telemetry": 1,
					"Clinical Documentation": 1,
				},
				TitleKeywords: []string{"nurse", "rn", "nursing"},
				TitleBonus:    3,
			},
			{
				Name: "Medical Assistant",
				Skills: map[string]float64{
					"Patient Care": 3, "Phlebotomy": 2, "Vital Signs Monitoring": 2,
					"Electronic Medical Records": 2, "CPR": 1, "Infection Control": 1,
				},
				TitleKeywords: []string{"medical assistant", "clinical assistant", "healthcare assistant"},
				TitleBonus:    3,
			},
			{
				Name: "Health Information Specialist",
				Skills: map[string]float64{
					"Medical Coding": 3, "Electronic Medical Records": 3, "Epic": 2,
					"HIPAA Compliance": 2, "Clinical Documentation": 2,
				},
				TitleKeywords: []string{"health information", "medical records", "coding specialist"},
				TitleBonus:    3,
			},
		},
		DegreeKeywords: []string{
			"bachelor", "master", "b.sc nursing", "bsn", "msn", "md", "mbbs",
			"associate degree", "nursing", "diploma",
		},
		CertKeywords: []string{
			"bls", "acls", "cpr certified", "licensed", "license", "certified", "certification",
		},
	}
}

func financeVocabulary() *DomainVocabulary {
	return &DomainVocabulary{
		Domain: "finance",
		Skills: []string{
			"Financial Modeling", "Financial Analysis", "Accounting", "Auditing",
			"GAAP", "IFRS", "Excel", "Bloomberg Terminal", "Valuation", "Budgeting",
			"Forecasting", "Risk Management", "Taxation", "QuickBooks", "SAP",
			"Financial Reporting", "Portfolio Management",
		},
		Aliases: map[string]string{
			"ms excel":        "Excel",
			"microsoft excel": "Excel",
			"bloomberg":       "Bloomberg Terminal",
			"us gaap":         "GAAP",
			"fp&a":            "Forecasting",
			"tax":             "Taxation",
			"quick books":     "QuickBooks",
		},
		Roles: []RoleDefinition{
			{
				Name: "Financial Analyst",
				Skills: map[string]float64{
					"Financial Modeling": 3, "Financial Analysis": 3, "Excel": 2,
					"Valuation": 2, "Forecasting": 2, "Bloomberg Terminal": 1, "Budgeting": 1,
				},
				TitleKeywords: []string{"financial analyst", "finance analyst", "investment analyst"},
				TitleBonus:    3,
			},
			{
				Name: "Accountant",
				Skills: map[string]float64{
					"Accounting": 3, "GAAP": 2, "IFRS": 2, "Financial Reporting": 2,
					"Taxation": 2, "QuickBooks": 1, "SAP": 1, "Auditing": 1,
				},
				TitleKeywords: []string{"accountant", "accounting", "bookkeeper"},
				TitleBonus:    3,
			},
			{
				Name: "Risk Analyst",
				Skills: map[string]float64{
					"Risk Management": 3, "Financial Analysis": 2, "Portfolio Management": 2,
					"Excel": 1, "Financial Modeling": 2, "Forecasting": 1,
				},
				TitleKeywords: []string{"risk", "compliance analyst"},
				TitleBonus:    3,
			},
		},
		DegreeKeywords: []string{
			"bachelor", "master", "mba", "b.com", "m.com", "bba", "commerce",
			"finance", "accounting", "economics",
		},
		CertKeywords: []string{
			"cfa", "cpa", "frm", "acca", "ca", "certified", "chartered", "certification",
		},
	}
}
