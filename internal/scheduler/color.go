package scheduler

import "fmt"

// SubjectColor derives a stable pastel HSL colour from a subject name.
func SubjectColor(name string) string {
	h := 0
	for _, r := range name {
		h = (h*31 + int(r)) % 360
	}
	return fmt.Sprintf("hsl(%d,65%%,85%%)", h)
}
