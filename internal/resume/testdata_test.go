package resume

const englishExport = `Contact
jane.doe@example.com
www.linkedin.com/in/janedoe (LinkedIn)
github.com/janedoe (Portfolio)
Top Skills
Go
PostgreSQL
Kubernetes
Languages
English (Native or Bilingual)
Jane Doe
Senior Backend Engineer
Madrid, Community of Madrid, Spain
Summary
Backend engineer with ten years of experience building APIs.
Experience
Acme Corp
Senior Backend Engineer
January 2021 - Present (3 years 2 months)
Madrid, Spain
Built the billing platform.
Page 1 of 2



Education
Universidad Politécnica de Madrid
Bachelor of Engineering - BE, Computer Science · (2010 - 2014)
Page 2 of 2
`

const spanishExport = `Contactar
juan.perez@example.es
www.linkedin.com/in/juanperez (LinkedIn)
Aptitudes principales
Go
Docker
Idiomas
Español (Nativo o bilingüe)
Juan Pérez
Ingeniero de Software
Sevilla, Andalucía, España
Extracto
Ingeniero con experiencia en sistemas distribuidos.
Experiencia
Globex
Ingeniero de Software
marzo de 2019 - Present (5 años)
Sevilla
Página 1 de 2
Educación
Universidad de Sevilla
Grado en Ingeniería Informática · (2012 - 2016)
`
