package llm

import (
	"fmt"
	"strings"
)

// ExtractionPrompt instructs the model to structure raw report text into the
// document JSON schema. The report content is appended by the caller.
const ExtractionPrompt = `Eres un experto analista de seguridad. Tu tarea es analizar el contenido de un reporte de vulnerabilidades y estructurarlo en formato JSON.

Debes extraer y organizar la información siguiendo exactamente este esquema JSON:

{
    "documento": {
        "titulo": "string",
        "fecha": "string",
        "autor": "string",
        "tipo_documento": "string",
        "numero_paginas": number
    },
    "resumen_ejecutivo": "string",
    "hallazgos_principales": [
        {
            "id": "string (ID único de la vulnerabilidad, ej: VULN-001, VULN-002, etc.)",
            "nombre": "string",
            "categoria": "string",
            "descripcion": "string",
            "severidad": "string",
            "impacto": "string",
            "detailed_proof_of_concept": "string (opcional)"
        }
    ],
    "recomendaciones": [
        {
            "prioridad": "string",
            "accion": "string",
            "descripcion": "string"
        }
    ],
    "datos_tecnicos": {
        "entorno": "string",
        "endpoints_pruebas": ["string"],
        "credenciales_utilizadas": {
            "nombre_usuario": {
                "usuario": "string",
                "contrasena": "string"
            }
        },
        "herramientas_utilizadas": ["string"],
        "observaciones_abiertas": ["string"]
    },
    "conclusiones": "string",
    "informacion_adicional": {
        "nota": "string",
        "recomendaciones_adicionales": ["string"]
    }
}

Instrucciones:
1. Analiza cuidadosamente todo el contenido del reporte
2. Extrae la información relevante y organízala según el esquema
3. Si algún campo no está disponible, usa valores por defecto apropiados ("Desconocido", "No especificado", etc.)
4. Mantén la información técnica precisa y detallada
5. Para cada vulnerabilidad:
   - "id": ID único y secuencial para la vulnerabilidad (ej: "VULN-001", "VULN-002", "VULN-003", etc.)
   - "nombre": Nombre específico de la vulnerabilidad (ej: "SQL Injection", "Cross-Site Scripting", "Server-Side Request Forgery")
   - "categoria": Tipo o categoría de la vulnerabilidad (ej: "Injection", "Broken Authentication", "Security Misconfiguration")
   - "severidad": Nivel de severidad (Crítica, Alta, Media, Baja)
6. Prioriza las recomendaciones (Alta, Media, Baja)
7. Responde ÚNICAMENTE con el JSON válido, sin texto adicional

Contenido del reporte a analizar:`

// TriageSystemPrompt is the system prompt for per-vulnerability triage. The
// model must answer with a JSON object matching the triage schema.
const TriageSystemPrompt = `Eres un experto analista de seguridad especializado en triage de vulnerabilidades.

Tu tarea es analizar vulnerabilidades de seguridad y realizar un triage completo que incluya:

1. **ANÁLISIS DE SEVERIDAD BASADO EN EVIDENCIA:**
   - Evalúa la evidencia real disponible (código, respuestas HTTP, archivos, configuraciones)
   - Asigna severidad basada en impacto real, no solo teórico
   - Considera el contexto del entorno y la aplicación
   - Escalas: "crítica", "alta", "media", "baja", "informativa"

2. **ASIGNACIÓN DE PRIORIDAD:**
   - P0: Crítico - Requiere acción inmediata (< 24h)
   - P1: Alto - Requiere acción urgente (< 1 semana)
   - P2: Medio - Requiere acción pronta (< 1 mes)
   - P3: Bajo - Puede programarse (< 3 meses)
   - P4: Informativo - Para conocimiento

3. **CRITERIOS DE EVALUACIÓN:**
   - **Impacto Real:** ¿Qué tan grave es el daño potencial?
   - **Probabilidad de Explotación:** ¿Qué tan fácil es explotar?
   - **Evidencia Disponible:** ¿Qué tan sólida es la evidencia?
   - **Contexto del Negocio:** ¿Qué tan crítico es el sistema afectado?
   - **Facilidad de Remediación:** ¿Qué tan fácil es corregir?

4. **TIPOS DE EVIDENCIA A EVALUAR:**
   - **Código:** Fragmentos de código vulnerable
   - **Respuesta HTTP:** Respuestas que confirman la vulnerabilidad
   - **Archivo:** Archivos sensibles expuestos
   - **Configuración:** Configuraciones inseguras
   - **Base de datos:** Datos expuestos o manipulables

5. **RECOMENDACIONES ESPECÍFICAS:**
   - **Inmediata:** Acciones que deben tomarse de inmediato
   - **Correctiva:** Correcciones del código/configuración
   - **Preventiva:** Medidas para prevenir recurrencia
   - **Mitigación:** Medidas temporales mientras se corrige

6. **FORMATO DE RESPUESTA:**
Debes responder SIEMPRE en formato JSON válido con la siguiente estructura:

` + "```json" + `
{
  "vulnerabilidad_id": "ID único",
  "nombre": "Nombre de la vulnerabilidad",
  "severidad_original": "Severidad del reporte original",
  "severidad_triage": "crítica|alta|media|baja|informativa",
  "justificacion_severidad": "Explicación detallada del por qué de la severidad asignada",
  "prioridad": "P0|P1|P2|P3|P4",
  "justificacion_prioridad": "Explicación de la prioridad asignada",
  "impacto_real": "Descripción del impacto real basado en evidencia",
  "probabilidad_explotacion": "alta|media|baja",
  "evidencias": [
    {
      "tipo_evidencia": "código|respuesta_http|archivo|configuración|base_datos",
      "descripcion": "Descripción de la evidencia",
      "contenido": "Contenido específico de la evidencia",
      "ubicacion": "Ubicación específica (archivo:línea, endpoint, etc.)",
      "criticidad_evidencia": "alto|medio|bajo"
    }
  ],
  "recomendaciones": [
    {
      "tipo": "inmediata|correctiva|preventiva|mitigación",
      "descripcion": "Descripción de la recomendación",
      "pasos_implementacion": ["Paso 1", "Paso 2", "..."],
      "impacto_implementacion": "alto|medio|bajo"
    }
  ],
  "confianza_analisis": 0.95,
  "requiere_validacion_manual": false,
  "notas_adicionales": "Notas adicionales si las hay"
}
` + "```" + `

**IMPORTANTE:**
- Sé riguroso en el análisis de evidencia
- No asignes severidades altas sin evidencia sólida
- Considera el contexto real del entorno
- Proporciona recomendaciones accionables y específicas
- Justifica todas tus decisiones con evidencia

Comienza tu análisis de triage ahora.`

// TriageQueryInput carries the fields of a raw finding that feed the triage
// query. Optional fields are omitted from the prompt when empty.
type TriageQueryInput struct {
	Number         int
	Name           string
	Description    string
	Severity       string
	Impact         string
	Status         string
	Evidence       string
	Payload        string
	ServerResponse string
}

// TriageQuery renders the per-vulnerability query sent alongside
// TriageSystemPrompt.
func TriageQuery(in TriageQueryInput) string {
	name := orDefault(in.Name, "No especificada")
	description := orDefault(in.Description, "No disponible")
	severity := orDefault(in.Severity, "No especificada")
	impact := orDefault(in.Impact, "No especificado")
	evidence := orDefault(in.Evidence, "No se proporcionó evidencia detallada")

	var b strings.Builder
	fmt.Fprintf(&b, `VULNERABILIDAD #%d PARA TRIAGE:

**INFORMACIÓN BÁSICA:**
- Nombre/Categoría: %s
- Descripción: %s
- Severidad Original: %s
- Impacto Reportado: %s
- Estado: %s

**EVIDENCIA DISPONIBLE:**
%s`, in.Number, name, description, severity, impact, in.Status, evidence)

	if in.Payload != "" {
		fmt.Fprintf(&b, "\n\n**PAYLOAD UTILIZADO:**\n%s", in.Payload)
	}
	if in.ServerResponse != "" {
		fmt.Fprintf(&b, "\n\n**RESPUESTA DEL SERVIDOR:**\n%s", in.ServerResponse)
	}

	b.WriteString(`

**INSTRUCCIONES:**
Realiza un análisis completo de triage para esta vulnerabilidad. Evalúa:
1. La calidad y solidez de la evidencia proporcionada
2. El impacto real basado en la evidencia
3. La facilidad de explotación
4. El contexto y las condiciones necesarias para la explotación

Proporciona una respuesta en formato JSON con la estructura especificada.`)

	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
