package proto

// ColorState is the MsgColorState payload: the three 2-bit channel values and the index of
// the channel being edited (0 red, 1 green, 2 blue).
type ColorState struct {
	R, G, B  uint8
	Selected uint8
}

const colorStateLen = 4

// ColorStatePayload encodes a MsgColorState payload.
//
// Layout: u8 red, u8 green, u8 blue, u8 selected.
func ColorStatePayload(st ColorState) []byte {
	return []byte{st.R, st.G, st.B, st.Selected}
}

// DecodeColorStatePayload decodes a ColorStatePayload, rejecting out-of-range values.
func DecodeColorStatePayload(b []byte) (ColorState, bool) {
	if len(b) != colorStateLen {
		return ColorState{}, false
	}
	st := ColorState{R: b[0], G: b[1], B: b[2], Selected: b[3]}
	if st.R > 3 || st.G > 3 || st.B > 3 || st.Selected > 2 {
		return ColorState{}, false
	}
	return st, true
}
