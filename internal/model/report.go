package model

// DocumentMetadata describes the source document a security report was
// extracted from. The date stays a free-text string: it is whatever the
// extractor could read off the document, validated (and parsed) later.
type DocumentMetadata struct {
	Title        string `json:"titulo"`
	Date         string `json:"fecha"`
	Author       string `json:"autor"`
	DocumentType string `json:"tipo_documento"`
	PageCount    int    `json:"numero_paginas"`
}

// Finding is a single issue as originally extracted from the source document,
// prior to triage. Severity and impact remain free text here; only triage
// produces canonical values.
type Finding struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"nombre"`
	Category       string `json:"categoria"`
	Description    string `json:"descripcion"`
	Severity       string `json:"severidad"`
	Impact         string `json:"impacto"`
	ProofOfConcept string `json:"detailed_proof_of_concept,omitempty"`
}

// Recommendation is a document-level remediation suggestion.
type Recommendation struct {
	Priority    string `json:"prioridad"`
	Action      string `json:"accion"`
	Description string `json:"descripcion"`
}

// Credentials are test credentials referenced by the assessment.
type Credentials struct {
	User     string `json:"usuario"`
	Password string `json:"contrasena"`
}

// TechnicalData captures the assessment's test environment details.
type TechnicalData struct {
	Environment      string                 `json:"entorno"`
	TestedEndpoints  []string               `json:"endpoints_pruebas"`
	CredentialsUsed  map[string]Credentials `json:"credenciales_utilizadas"`
	ToolsUsed        []string               `json:"herramientas_utilizadas"`
	OpenObservations []string               `json:"observaciones_abiertas"`
}

// AdditionalInfo is the free-form tail block of a report.
type AdditionalInfo struct {
	Note                      string   `json:"nota"`
	AdditionalRecommendations []string `json:"recomendaciones_adicionales"`
}

// SecurityReport is the document-level aggregate produced once per PDF by the
// extraction agent and consumed by triage and validation.
type SecurityReport struct {
	Document         DocumentMetadata `json:"documento"`
	ExecutiveSummary string           `json:"resumen_ejecutivo"`
	Findings         []Finding        `json:"hallazgos_principales"`
	Recommendations  []Recommendation `json:"recomendaciones"`
	TechnicalData    TechnicalData    `json:"datos_tecnicos"`
	Conclusions      string           `json:"conclusiones"`
	AdditionalInfo   AdditionalInfo   `json:"informacion_adicional"`
}
