package docx

import "strings"

var tagDelims = [...][2]string{
	{"{{", "}}"},
	{"{%", "%}"},
	{"{#", "#}"},
}

// hasMarkup reports whether s contains the opening of a template tag.
func hasMarkup(s string) bool {
	for _, d := range tagDelims {
		if strings.Contains(s, d[0]) {
			return true
		}
	}
	return false
}

// hasBlockTag reports whether s contains a statement tag such as {% if %}.
func hasBlockTag(s string) bool {
	return strings.Contains(s, "{%")
}

// mergeSplitTags moves the text of every tag that spans several runs into
// the run where the tag opens. Word breaks text into runs at arbitrary points
// (spell check, edits, formatting), so "{{ na" + "me }}" is common. The
// returned slice has the same length as texts; runs emptied by the merge
// come back as "". Unterminated tags are left alone.
func mergeSplitTags(texts []string) []string {
	var joined strings.Builder
	owner := make([]int, 0)
	for i, t := range texts {
		joined.WriteString(t)
		for j := 0; j < len(t); j++ {
			owner = append(owner, i)
		}
	}
	s := joined.String()

	for pos := 0; pos < len(s)-1; {
		closing := ""
		for _, d := range tagDelims {
			if strings.HasPrefix(s[pos:], d[0]) {
				closing = d[1]
				break
			}
		}
		if closing == "" {
			pos++
			continue
		}
		end := strings.Index(s[pos+2:], closing)
		if end < 0 {
			break
		}
		end += pos + 2 + len(closing)
		for i := pos; i < end; i++ {
			owner[i] = owner[pos]
		}
		pos = end
	}

	out := make([]string, len(texts))
	var b strings.Builder
	cur := 0
	for i := 0; i < len(s); i++ {
		if owner[i] != cur {
			out[cur] = b.String()
			b.Reset()
			cur = owner[i]
		}
		b.WriteByte(s[i])
	}
	if len(s) > 0 {
		out[cur] = b.String()
	}
	return out
}
