package hal

import "fmt"

// ParseKeyScript turns a button script into key codes.
//
// Letters (case-insensitive): u up, d down, s select, b back. A '.' keeps one tick idle and
// is returned as KeyUnknown. Spaces are ignored.
func ParseKeyScript(script string) ([]KeyCode, error) {
	var out []KeyCode
	for i, r := range script {
		switch r {
		case 'u', 'U':
			out = append(out, KeyUp)
		case 'd', 'D':
			out = append(out, KeyDown)
		case 's', 'S':
			out = append(out, KeyEnter)
		case 'b', 'B':
			out = append(out, KeyEscape)
		case '.':
			out = append(out, KeyUnknown)
		case ' ':
		default:
			return nil, fmt.Errorf("key script: unexpected %q at %d", r, i)
		}
	}
	return out, nil
}
