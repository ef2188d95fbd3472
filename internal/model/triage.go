package model

import "time"

// Evidence is a supporting artifact attached to a vulnerability during triage.
// Immutable once created.
type Evidence struct {
	Type        EvidenceType `json:"tipo_evidencia"`
	Description string       `json:"descripcion"`
	Content     string       `json:"contenido"`
	Location    string       `json:"ubicacion,omitempty"`
	Criticality ImpactLevel  `json:"criticidad_evidencia"`
}

// TriageRecommendation is an actionable remediation item attached to exactly
// one triaged vulnerability.
type TriageRecommendation struct {
	Type                 RecommendationType `json:"tipo"`
	Description          string             `json:"descripcion"`
	Steps                []string           `json:"pasos_implementacion"`
	Resources            []string           `json:"recursos_necesarios"`
	ImplementationImpact ImpactLevel        `json:"impacto_implementacion"`
}

// TriagedVulnerability is the central triage entity. Severity, priority and
// confidence always hold canonical, post-enhancement values; the raw LLM
// output is only a recommendation.
type TriagedVulnerability struct {
	ID                    string                 `json:"id_vulnerabilidad"`
	Name                  string                 `json:"nombre"`
	OriginalDescription   string                 `json:"descripcion_original"`
	OriginalSeverity      string                 `json:"severidad_original"`
	TriageSeverity        Severity               `json:"severidad_triage"`
	SeverityScore         float64                `json:"score_severidad"`
	SeverityJustification string                 `json:"justificacion_severidad"`
	Priority              Priority               `json:"prioridad"`
	PriorityJustification string                 `json:"justificacion_prioridad"`
	Evidence              []Evidence             `json:"evidencias"`
	RealImpact            string                 `json:"impacto_real"`
	ExploitProbability    ExploitProbability     `json:"probabilidad_explotacion"`
	Recommendations       []TriageRecommendation `json:"recomendaciones"`
	TriagedAt             time.Time              `json:"fecha_triage"`
	Confidence            float64                `json:"confianza_analisis"`
	RequiresManualReview  bool                   `json:"requiere_validacion_manual"`
	Notes                 string                 `json:"notas_adicionales,omitempty"`
}

// PlanItem is one entry of the ordered remediation plan.
type PlanItem struct {
	Rank            int      `json:"orden"`
	VulnerabilityID string   `json:"vulnerabilidad_id"`
	Name            string   `json:"nombre"`
	Priority        Priority `json:"prioridad"`
	Severity        Severity `json:"severidad"`
	EstimatedTime   string   `json:"tiempo_estimado"`
	Resources       []string `json:"recursos_necesarios"`
	MainActions     []string `json:"acciones_principales"`
}

// TriageReport aggregates a triaged batch. Invariant: both distributions sum
// to TotalVulnerabilities; validation checks it rather than assuming it.
type TriageReport struct {
	ID                     string                 `json:"id_reporte"`
	GeneratedAt            time.Time              `json:"fecha_generacion"`
	SourceReport           string                 `json:"reporte_origen"`
	Summary                string                 `json:"resumen_triage"`
	TotalVulnerabilities   int                    `json:"total_vulnerabilidades"`
	SeverityDistribution   map[Severity]int       `json:"distribucion_severidad"`
	PriorityDistribution   map[Priority]int       `json:"distribucion_prioridad"`
	Vulnerabilities        []TriagedVulnerability `json:"vulnerabilidades"`
	GeneralRecommendations []string               `json:"recomendaciones_generales"`
	RemediationPlan        []PlanItem             `json:"plan_remediacion"`
	OverallRisk            RiskLevel              `json:"riesgo_general"`
	RiskScore              float64                `json:"score_riesgo"`
	AgentVersion           string                 `json:"version_agente"`
	TriageConfig           map[string]string      `json:"configuracion_triage"`
}
