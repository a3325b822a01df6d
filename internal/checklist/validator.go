// Package checklist evaluates a retrieval-system design document against
// requirement-documentation needs and can iteratively apply deterministic
// fixes until every check passes.
//
// The design document is a JSON object; checks and fixes operate on it
// in place. The validator is entirely rule-based: no model calls, no
// randomness, same input always yields the same reports.
package checklist

// requiredDesignKeys are the top-level sections every design must carry.
var requiredDesignKeys = []string{
	"data_sources",
	"chunking",
	"embeddings",
	"vector_store",
	"retrieval",
	"generation",
	"evaluation",
	"feedback_loop",
}

// requiredMetadataFields keep retrieval results traceable back to the
// originating requirement.
var requiredMetadataFields = []string{
	"doc_id",
	"doc_type",
	"module",
	"requirement_id",
	"version",
	"language",
}

// requiredDocTypes are the document classes a requirement corpus must cover.
var requiredDocTypes = []string{
	"Functional Spec",
	"Technical Spec",
	"Requirement Document",
}

// CheckResult is the outcome of one design check.
type CheckResult struct {
	// Name identifies the check.
	Name string

	// Passed reports whether the design satisfies the check.
	Passed bool

	// Message explains the outcome.
	Message string

	// Fix names the deterministic remediation, empty when none applies.
	Fix string
}

// IterationReport is one pass of the improvement loop.
type IterationReport struct {
	// Iteration is the 1-based pass number.
	Iteration int

	// Checks are the results of this pass, in evaluation order.
	Checks []CheckResult

	// FixesApplied describes the remediations applied after this pass.
	FixesApplied []string
}

// Passed reports whether every check of this iteration passed.
func (r IterationReport) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Validator checks whether a retrieval-system design satisfies
// requirement-document needs.
type Validator struct {
	design map[string]any
}

// New creates a validator over the given design document.
// The design is mutated in place when fixes are applied.
func New(design map[string]any) *Validator {
	if design == nil {
		design = make(map[string]any)
	}
	return &Validator{design: design}
}

// Design returns the (possibly fixed) design document.
func (v *Validator) Design() map[string]any {
	return v.design
}

// Evaluate runs every check once, without applying fixes.
func (v *Validator) Evaluate() []CheckResult {
	return []CheckResult{
		v.checkTopLevelSections(),
		v.checkDataSources(),
		v.checkChunking(),
		v.checkMetadata(),
		v.checkRetrievalStrategy(),
		v.checkEvaluation(),
		v.checkFeedbackLoop(),
		v.checkSecurity(),
	}
}

// Run executes the evaluate-fix loop for at most maxIterations passes,
// stopping early once every check passes. With applyFixes false it
// evaluates only.
func (v *Validator) Run(maxIterations int, applyFixes bool) []IterationReport {
	var reports []IterationReport

	for i := 1; i <= maxIterations; i++ {
		checks := v.Evaluate()
		report := IterationReport{Iteration: i, Checks: checks}

		if applyFixes && !report.Passed() {
			report.FixesApplied = v.applyFixes(checks)
		}
		reports = append(reports, report)

		if report.Passed() {
			break
		}
	}

	return reports
}

// --- checks ---

func (v *Validator) checkTopLevelSections() CheckResult {
	var missing []string
	for _, key := range requiredDesignKeys {
		if _, ok := v.design[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "top_level_sections",
			Message: "Missing design sections: " + joinSorted(missing),
			Fix:     "add_missing_top_sections",
		}
	}
	return CheckResult{
		Name:    "top_level_sections",
		Passed:  true,
		Message: "All top-level sections are present",
	}
}

func (v *Validator) checkDataSources() CheckResult {
	supported := stringSet(stringSlice(section(v.design, "data_sources")["supported_doc_types"]))

	var missing []string
	for _, needed := range requiredDocTypes {
		if _, ok := supported[needed]; !ok {
			missing = append(missing, needed)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "data_sources",
			Message: "Missing required source doc types: " + joinSorted(missing),
			Fix:     "ensure_requirement_sources",
		}
	}
	return CheckResult{
		Name:    "data_sources",
		Passed:  true,
		Message: "Source coverage includes requirement document types",
	}
}

func (v *Validator) checkChunking() CheckResult {
	cfg := section(v.design, "chunking")
	strategy, _ := cfg["strategy"].(string)
	maxTokens := intValue(cfg["max_tokens"])
	overlap := intValue(cfg["overlap_tokens"])

	if strategy != "section_aware" || maxTokens < 300 || maxTokens > 1200 || overlap < 50 || overlap > 250 {
		return CheckResult{
			Name:    "chunking",
			Message: "Chunking should be section-aware with max_tokens 300-1200 and overlap 50-250",
			Fix:     "fix_chunking",
		}
	}
	return CheckResult{
		Name:    "chunking",
		Passed:  true,
		Message: "Chunking settings look appropriate for requirement docs",
	}
}

func (v *Validator) checkMetadata() CheckResult {
	fields := stringSet(stringSlice(section(v.design, "retrieval")["metadata_fields"]))

	var missing []string
	for _, field := range requiredMetadataFields {
		if _, ok := fields[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "metadata",
			Message: "Missing metadata fields: " + joinSorted(missing),
			Fix:     "add_metadata_fields",
		}
	}
	return CheckResult{
		Name:    "metadata",
		Passed:  true,
		Message: "Metadata fields cover requirement traceability",
	}
}

func (v *Validator) checkRetrievalStrategy() CheckResult {
	cfg := section(v.design, "retrieval")
	mode, _ := cfg["mode"].(string)
	reranker, _ := cfg["reranker"].(string)
	topK := intValue(cfg["top_k"])

	if mode != "hybrid" || reranker == "" || topK < 5 {
		return CheckResult{
			Name:    "retrieval_strategy",
			Message: "Retrieval should use hybrid mode, reranking, and top_k >= 5",
			Fix:     "strengthen_retrieval",
		}
	}
	return CheckResult{
		Name:    "retrieval_strategy",
		Passed:  true,
		Message: "Retrieval strategy meets robustness expectations",
	}
}

func (v *Validator) checkEvaluation() CheckResult {
	cfg := section(v.design, "evaluation")
	metrics := section(cfg, "metrics")

	var missing []string
	for _, m := range []string{"groundedness", "answer_correctness", "retrieval_recall_at_k"} {
		if _, ok := metrics[m]; !ok {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 || intValue(cfg["golden_set_size"]) < 50 {
		return CheckResult{
			Name:    "evaluation",
			Message: "Need groundedness/correctness/recall metrics and golden_set_size >= 50",
			Fix:     "add_eval_metrics",
		}
	}
	return CheckResult{
		Name:    "evaluation",
		Passed:  true,
		Message: "Evaluation plan is measurable and sufficient",
	}
}

func (v *Validator) checkFeedbackLoop() CheckResult {
	cfg := section(v.design, "feedback_loop")
	capture, _ := cfg["capture_user_feedback"].(bool)
	trigger, _ := cfg["reindex_trigger"].(string)

	if !capture || trigger == "" {
		return CheckResult{
			Name:    "feedback_loop",
			Message: "Feedback loop must capture user feedback and define a reindex trigger",
			Fix:     "add_feedback_loop",
		}
	}
	return CheckResult{
		Name:    "feedback_loop",
		Passed:  true,
		Message: "Feedback loop supports eval-fix-update-repeat cycle",
	}
}

func (v *Validator) checkSecurity() CheckResult {
	security := section(v.design, "security")
	generation := section(v.design, "generation")
	rowLevel, _ := security["row_level_security"].(bool)
	audit, _ := security["audit_logging"].(bool)
	citations, _ := generation["citation_required"].(bool)

	if !rowLevel || !audit || !citations {
		return CheckResult{
			Name:    "security",
			Message: "Enterprise controls require row-level security, audit logging, and citations",
			Fix:     "add_security_controls",
		}
	}
	return CheckResult{
		Name:    "security",
		Passed:  true,
		Message: "Security and citation controls are configured",
	}
}
