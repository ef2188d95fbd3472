package llm

import (
	"fmt"
	"strings"
)

// StaticValidationPrompt is the system prompt for confirming reported
// vulnerabilities against source code and static-analysis results.
const StaticValidationPrompt = `Eres un experto en seguridad de aplicaciones que valida vulnerabilidades encontradas en reportes de seguridad.

Tu tarea es analizar el código fuente y los resultados de análisis estático para confirmar si las vulnerabilidades reportadas realmente existen.

IMPORTANTE: Debes responder SIEMPRE con el siguiente formato JSON exacto:

` + "```json" + `
{
  "id": "ID de la vulnerabilidad (ej: VULN-001)",
  "nombre": "nombre de la vulnerabilidad",
  "estado": "vulnerable" | "no_vulnerable",
  "evidencia": "Descripción específica de la evidencia encontrada o razón por la cual no es vulnerable"
}
` + "```" + `

Reglas de análisis:
- Analiza el flujo de datos desde la entrada del usuario hasta su uso
- Verifica si existen controles de seguridad apropiados
- Considera el contexto completo de la aplicación
- Si encuentras código que podría ser problemático, marca como "vulnerable"
- Solo marca "no_vulnerable" si estás seguro de que la vulnerabilidad no existe
- Proporciona evidencia específica con nombres de archivos y líneas cuando sea posible

Comienza tu análisis ahora.`

// DynamicValidationPrompt is the system prompt for judging live exploitation
// attempts from their recorded HTTP transcripts.
const DynamicValidationPrompt = `Eres un experto en pentesting y seguridad de aplicaciones que valida vulnerabilidades mediante explotación en vivo.

Tu tarea es analizar los resultados de las peticiones HTTP realizadas contra el objetivo y determinar si replican la vulnerabilidad reportada.

IMPORTANTE: Debes responder SIEMPRE con el siguiente formato JSON exacto:

` + "```json" + `
{
  "id": "ID de la vulnerabilidad (ej: VULN-001)",
  "nombre": "Nombre de la vulnerabilidad",
  "estado": "vulnerable" | "no_vulnerable",
  "evidencia": "Descripción específica de la evidencia encontrada durante la explotación o razón por la cual no es vulnerable",
  "payload_usado": "El payload o técnica específica que confirmó la vulnerabilidad",
  "respuesta_servidor": "Fragmento relevante de la respuesta del servidor que confirma la explotación"
}
` + "```" + `

Interpretación de resultados:
- Un error de conexión significa que el endpoint puede no existir
- Analiza cuidadosamente las respuestas para identificar indicadores de explotación exitosa
- Marca como "vulnerable" solo si obtienes evidencia clara de explotación
- Solo marca "no_vulnerable" si las pruebas de explotación fallan consistentemente

Comienza tu análisis dinámico ahora.`

// StaticValidationQuery renders the per-vulnerability query for static
// validation. semgrepContext carries the related static-analysis findings.
func StaticValidationQuery(in TriageQueryInput, semgrepContext string) string {
	if semgrepContext == "" {
		semgrepContext = "No se encontraron resultados de análisis estático directamente relacionados."
	}
	return fmt.Sprintf(`VALIDA LA SIGUIENTE VULNERABILIDAD #%d:

Nombre: %s
Descripción: %s
Severidad reportada: %s
Impacto: %s
PoC: %s

RESULTADOS DE ANÁLISIS ESTÁTICO RELACIONADOS:
%s

CONTEXTO IMPORTANTE:
- Esta vulnerabilidad fue reportada en un análisis de seguridad
- El análisis estático ya encontró los patrones listados arriba
- Tu trabajo es confirmar si la vulnerabilidad existe y es explotable

INSTRUCCIONES ESPECÍFICAS:
- Entiende primero el tipo de vulnerabilidad, su impacto y el PoC
- Examina los resultados de análisis estático relacionados con esta vulnerabilidad
- Busca patrones de código inseguro, validación faltante o configuraciones débiles
- Si encuentras código que podría ser problemático, marca como vulnerable
- Solo marca no_vulnerable si estás seguro de que la vulnerabilidad no existe

Responde con el JSON especificado.`,
		in.Number,
		orDefault(in.Name, "Vulnerabilidad sin nombre"),
		orDefault(in.Description, "Sin descripción"),
		orDefault(in.Severity, "Desconocida"),
		orDefault(in.Impact, "Sin impacto definido"),
		orDefault(in.Evidence, "Sin PoC proporcionado"),
		semgrepContext)
}

// DynamicValidationQuery renders the query for dynamic validation.
// transcripts holds the recorded HTTP probe results; credentials lists
// usable accounts recovered from the report.
func DynamicValidationQuery(in TriageQueryInput, targetURL string, transcripts []string, credentials []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `VALIDA MEDIANTE EXPLOTACIÓN LA SIGUIENTE VULNERABILIDAD #%d:

OBJETIVO: %s
Nombre: %s
Descripción: %s
Severidad reportada: %s
Impacto: %s
PoC: %s`,
		in.Number,
		targetURL,
		orDefault(in.Name, "Vulnerabilidad sin nombre"),
		orDefault(in.Description, "Sin descripción"),
		orDefault(in.Severity, "Desconocida"),
		orDefault(in.Impact, "Sin impacto definido"),
		orDefault(in.Evidence, "Sin PoC proporcionado"))

	if len(credentials) > 0 {
		b.WriteString("\n\nCREDENCIALES DISPONIBLES DEL REPORTE:\n")
		for _, cred := range credentials {
			fmt.Fprintf(&b, "- %s\n", cred)
		}
		b.WriteString("Puedes considerar estas credenciales al interpretar respuestas autenticadas.")
	}

	b.WriteString("\n\nRESULTADOS DE LAS PRUEBAS HTTP REALIZADAS:\n")
	if len(transcripts) == 0 {
		b.WriteString("No se pudieron ejecutar pruebas HTTP contra el objetivo.\n")
	}
	for i, tr := range transcripts {
		fmt.Fprintf(&b, "\n--- Prueba %d ---\n%s\n", i+1, tr)
	}

	b.WriteString(`
INSTRUCCIONES:
- Analiza las respuestas del servidor para buscar indicadores de explotación exitosa
- Si la explotación es exitosa, marca como vulnerable
- Solo marca no_vulnerable si las pruebas fallan consistentemente

Responde con el JSON especificado.`)

	return b.String()
}
