package analysis

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	Tree      string
	Diff      string
	Ticket    *TicketPromptData
	RepoOwner string
	RepoName  string
}

// TicketPromptData is the ticket block of the impact prompt, already truncated.
type TicketPromptData struct {
	Key                string
	Title              string
	Description        string
	AcceptanceCriteria string
	Status             string
	Priority           string
	IssueType          string
}

const (
	systemPromptEN = `You are a senior software architect reviewing pull requests. You answer with a single JSON object and nothing else: no markdown, no prose.`
	systemPromptES = `Sos un arquitecto de software senior que revisa pull requests. Respondés con un único objeto JSON y nada más: sin markdown ni texto adicional.`

	impactPromptEN = `Assess the architectural impact and the risk of the following change.

Project structure:
{{if .Tree}}{{.Tree}}{{else}}(not available){{end}}

Diff:
{{.Diff}}
{{if .Ticket}}
Linked ticket {{.Ticket.Key}}:
- Title: {{.Ticket.Title}}
- Status: {{.Ticket.Status}}
- Priority: {{.Ticket.Priority}}
- Type: {{.Ticket.IssueType}}
- Description:
{{.Ticket.Description}}
{{if .Ticket.AcceptanceCriteria}}- Acceptance criteria:
{{.Ticket.AcceptanceCriteria}}
{{end}}
Compare the change against the ticket and fill "requirementsAlignment".
{{end}}
Rules:
- If the diff only touches tests or documentation, "risk.score" MUST be "LOW".
- "risk.score" is one of CRITICAL, HIGH, MEDIUM, LOW.
- Every "technicalDetails" value is one or two sentences; write "No significant impact detected." when a category is not affected.

Answer with this JSON schema:
{
  "risk": {"score": "CRITICAL|HIGH|MEDIUM|LOW", "reasoning": "string"},
  "keyChanges": ["string"],{{if .Ticket}}
  "requirementsAlignment": {
    "fullyAddressed": true,
    "missingRequirements": ["string"],
    "additionalChanges": ["string"],
    "alignmentScore": "FULL|PARTIAL|NONE"
  },{{end}}
  "technicalDetails": {"API": "string", "Database": "string", "Logic": "string", "UI": "string", "Security": "string"}
}`

	impactPromptES = `Evaluá el impacto arquitectónico y el riesgo del siguiente cambio.

Estructura del proyecto:
{{if .Tree}}{{.Tree}}{{else}}(no disponible){{end}}

Diff:
{{.Diff}}
{{if .Ticket}}
Ticket vinculado {{.Ticket.Key}}:
- Título: {{.Ticket.Title}}
- Estado: {{.Ticket.Status}}
- Prioridad: {{.Ticket.Priority}}
- Tipo: {{.Ticket.IssueType}}
- Descripción:
{{.Ticket.Description}}
{{if .Ticket.AcceptanceCriteria}}- Criterios de aceptación:
{{.Ticket.AcceptanceCriteria}}
{{end}}
Compará el cambio con el ticket y completá "requirementsAlignment".
{{end}}
Reglas:
- Si el diff solo toca tests o documentación, "risk.score" DEBE ser "LOW".
- "risk.score" es uno de CRITICAL, HIGH, MEDIUM, LOW.
- Cada valor de "technicalDetails" tiene una o dos oraciones; escribí "No significant impact detected." cuando una categoría no se ve afectada.

Respondé con este esquema JSON (las claves en inglés, los textos en español):
{
  "risk": {"score": "CRITICAL|HIGH|MEDIUM|LOW", "reasoning": "string"},
  "keyChanges": ["string"],{{if .Ticket}}
  "requirementsAlignment": {
    "fullyAddressed": true,
    "missingRequirements": ["string"],
    "additionalChanges": ["string"],
    "alignmentScore": "FULL|PARTIAL|NONE"
  },{{end}}
  "technicalDetails": {"API": "string", "Database": "string", "Logic": "string", "UI": "string", "Security": "string"}
}`

	testCasesPromptEN = `Draft manual QA test cases for the following change in {{.RepoOwner}}/{{.RepoName}}.

Project structure:
{{if .Tree}}{{.Tree}}{{else}}(not available){{end}}

Diff:
{{.Diff}}

Rules:
- Generate as many test cases as the change needs, no fixed count. A trivial change may need none.
- Do not repeat a scenario.
- Cover positive, negative, edge case, performance and security scenarios only where they are relevant.
- Steps are short imperative sentences a tester can follow without reading the code.
- "priority" is one of HIGH, MEDIUM, LOW.

Answer with this JSON schema:
{
  "summary": "string",
  "testCases": [
    {"title": "string", "steps": ["string"], "expectedResult": "string", "priority": "HIGH|MEDIUM|LOW"}
  ]
}`

	testCasesPromptES = `Redactá casos de prueba manuales de QA para el siguiente cambio en {{.RepoOwner}}/{{.RepoName}}.

Estructura del proyecto:
{{if .Tree}}{{.Tree}}{{else}}(no disponible){{end}}

Diff:
{{.Diff}}

Reglas:
- Generá tantos casos como el cambio necesite, sin una cantidad fija. Un cambio trivial puede no necesitar ninguno.
- No repitas escenarios.
- Cubrí escenarios positivos, negativos, casos borde, de performance y de seguridad solo cuando sean relevantes.
- Los pasos son oraciones cortas en imperativo que un tester pueda seguir sin leer el código.
- "priority" es uno de HIGH, MEDIUM, LOW.

Respondé con este esquema JSON (las claves en inglés, los textos en español):
{
  "summary": "string",
  "testCases": [
    {"title": "string", "steps": ["string"], "expectedResult": "string", "priority": "HIGH|MEDIUM|LOW"}
  ]
}`
)

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

func GetSystemPrompt(lang string) string {
	switch lang {
	case "es":
		return systemPromptES
	default:
		return systemPromptEN
	}
}

func GetImpactPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return impactPromptES
	default:
		return impactPromptEN
	}
}

func GetTestCasesPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return testCasesPromptES
	default:
		return testCasesPromptEN
	}
}
