package checklist

import "sort"

// applyFixes runs the remediation for every failed check and returns
// human-readable descriptions of the applied fixes, in check order.
func (v *Validator) applyFixes(checks []CheckResult) []string {
	var applied []string
	for _, check := range checks {
		if check.Passed || check.Fix == "" {
			continue
		}
		if desc, ok := v.applyFix(check.Fix); ok {
			applied = append(applied, desc)
		}
	}
	return applied
}

func (v *Validator) applyFix(name string) (string, bool) {
	switch name {
	case "add_missing_top_sections":
		for _, key := range requiredDesignKeys {
			if _, ok := v.design[key]; !ok {
				v.design[key] = map[string]any{}
			}
		}
		return "Added missing top-level design sections", true

	case "ensure_requirement_sources":
		ds := ensureSection(v.design, "data_sources")
		ds["supported_doc_types"] = mergeStrings(stringSlice(ds["supported_doc_types"]), requiredDocTypes)
		return "Extended data sources with requirement document types", true

	case "fix_chunking":
		ch := ensureSection(v.design, "chunking")
		ch["strategy"] = "section_aware"
		ch["max_tokens"] = 900
		ch["overlap_tokens"] = 120
		return "Set section-aware chunking with max_tokens=900 overlap=120", true

	case "add_metadata_fields":
		rt := ensureSection(v.design, "retrieval")
		rt["metadata_fields"] = mergeStrings(stringSlice(rt["metadata_fields"]), requiredMetadataFields)
		return "Added requirement traceability metadata fields", true

	case "strengthen_retrieval":
		rt := ensureSection(v.design, "retrieval")
		rt["mode"] = "hybrid"
		if reranker, _ := rt["reranker"].(string); reranker == "" {
			rt["reranker"] = "cross_encoder"
		}
		if intValue(rt["top_k"]) < 5 {
			rt["top_k"] = 8
		}
		return "Switched retrieval to hybrid mode with reranking and top_k>=5", true

	case "add_eval_metrics":
		ev := ensureSection(v.design, "evaluation")
		metrics := ensureSection(ev, "metrics")
		for _, m := range []string{"groundedness", "answer_correctness", "retrieval_recall_at_k"} {
			if _, ok := metrics[m]; !ok {
				metrics[m] = "tracked"
			}
		}
		if intValue(ev["golden_set_size"]) < 50 {
			ev["golden_set_size"] = 50
		}
		return "Added evaluation metrics and a golden set of at least 50 queries", true

	case "add_feedback_loop":
		fb := ensureSection(v.design, "feedback_loop")
		fb["capture_user_feedback"] = true
		if trigger, _ := fb["reindex_trigger"].(string); trigger == "" {
			fb["reindex_trigger"] = "weekly_or_on_document_change"
		}
		return "Enabled user feedback capture with a reindex trigger", true

	case "add_security_controls":
		sec := ensureSection(v.design, "security")
		sec["row_level_security"] = true
		sec["audit_logging"] = true
		gen := ensureSection(v.design, "generation")
		gen["citation_required"] = true
		return "Enabled row-level security, audit logging, and required citations", true
	}

	return "", false
}

// --- document helpers ---

// section returns the named child object, or an empty map when the key
// is absent or not an object. The design is never modified.
func section(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	return map[string]any{}
}

// ensureSection returns the named child object, creating it when absent
// or replacing it when it is not an object.
func ensureSection(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	child := map[string]any{}
	m[key] = child
	return child
}

func stringSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// mergeStrings appends the missing required values to existing,
// preserving the existing order.
func mergeStrings(existing, required []string) []string {
	seen := stringSet(existing)
	merged := append([]string(nil), existing...)
	for _, r := range required {
		if _, ok := seen[r]; !ok {
			merged = append(merged, r)
		}
	}
	return merged
}

// intValue coerces JSON numbers to int. JSON decoding yields float64.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func joinSorted(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)

	out := ""
	for i, item := range sorted {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
