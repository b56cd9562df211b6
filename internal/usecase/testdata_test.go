package usecase

const linkedInText = `Contact
jane.doe@example.com
www.linkedin.com/in/janedoe (LinkedIn)
Top Skills
Go
PostgreSQL
Jane Doe
Senior Backend Engineer
Summary
Backend engineer with ten years of experience building APIs.
Experience
Acme Corp
Senior Backend Engineer
January 2021 - Present (3 years 2 months)
Education
Universidad Politécnica de Madrid
Bachelor of Engineering - BE, Computer Science · (2010 - 2014)
`

const modelReply = "```json\n" + `{
  "contact": {"github": "", "mobile": "", "email": "jane.doe@example.com", "linkedin": "www.linkedin.com/in/janedoe"},
  "name": "Jane Doe",
  "title": "Senior Backend Engineer",
  "location": "Madrid, Spain",
  "summary": "Backend engineer with ten years of experience building APIs.",
  "skills": {"mainSkills": ["Go", "PostgreSQL"], "languages": []},
  "experience": [{
    "company": "Acme Corp",
    "position": "Senior Backend Engineer",
    "startDate": "January 2021",
    "endDate": "Present",
    "duration": "3 years 2 months",
    "location": "",
    "description": []
  }],
  "education": [{
    "institution": "Universidad Politécnica de Madrid",
    "degree": "Bachelor of Engineering",
    "field": "Computer Science",
    "period": "2010 - 2014"
  }]
}` + "\n```"
