package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/decantra/bgverify/gates"
)

// ImageReport collects the per-image gate results for one target.
type ImageReport struct {
	Name    string
	Results []gates.Result
}

// Report is the orchestrator's output: per-image results, the global
// motion/theme/palette results, unresolved input conditions and the final
// verdict. Constructed once per Run and never mutated after return.
type Report struct {
	Images        []ImageReport
	Motion        *gates.Result
	MotionMetrics gates.MotionMetrics
	Theme         *gates.Result
	Palette       *gates.Result

	// Unresolved lists required inputs that were missing. Distinct from a
	// gate that ran and failed: nothing was measured, so nothing can have
	// passed. Any entry forces Passed to false.
	Unresolved []string

	// Passed is the logical AND of every evaluated gate across every image,
	// with Unavailable counting as not-passed for required checks.
	Passed bool
}

// finalize computes the overall verdict from the collected results.
func (r *Report) finalize() {
	passed := true
	for _, img := range r.Images {
		for _, res := range img.Results {
			passed = passed && res.Passed()
		}
	}
	for _, global := range []*gates.Result{r.Motion, r.Theme, r.Palette} {
		if global != nil && global.Status == gates.StatusFail {
			passed = false
		}
	}
	if len(r.Unresolved) > 0 {
		passed = false
	}
	r.Passed = passed
}

// InputMissing reports whether the run was blocked by a missing required
// input, so a CLI wrapper can exit with a distinct code for configuration
// problems versus genuine regressions.
func (r *Report) InputMissing() bool {
	return len(r.Unresolved) > 0
}

const ruleWidth = 72

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func writeResult(w io.Writer, res gates.Result) {
	fmt.Fprintf(w, "%s: %s\n", res.Name, res.Status)
	for _, detail := range res.Details {
		fmt.Fprintf(w, "  - %s\n", detail)
	}
}

// Render writes the human-readable report: every gate's status and
// diagnostics per image, the global checks, unresolved conditions, and a
// single final verdict line.
func (r *Report) Render(w io.Writer) {
	for _, img := range r.Images {
		rule(w)
		fmt.Fprintf(w, "Verifying %s\n", img.Name)
		rule(w)
		for _, res := range img.Results {
			writeResult(w, res)
		}
	}

	if r.Motion != nil || r.Theme != nil || r.Palette != nil {
		rule(w)
		fmt.Fprintln(w, "Cross-image checks")
		rule(w)
		for _, global := range []*gates.Result{r.Motion, r.Theme, r.Palette} {
			if global != nil {
				writeResult(w, *global)
			}
		}
	}

	for _, missing := range r.Unresolved {
		fmt.Fprintf(w, "UNRESOLVED: %s\n", missing)
	}

	rule(w)
	status := "FAIL"
	if r.Passed {
		status = "PASS"
	}
	fmt.Fprintf(w, "BACKGROUND VISIBILITY VERIFICATION RESULT: %s\n", status)
	rule(w)
}
