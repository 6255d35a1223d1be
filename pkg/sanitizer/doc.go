// Package sanitizer normalizes untrusted text through composable transforms.
//
//	clean := sanitizer.Line(120)
//	title := clean("  Saved\n\x00 draft  ") // "Saved draft"
//
// It never rejects input. The viewport runs toast text published over HTTP
// through Line and Paragraph before it reaches the engine; HTML escaping is
// left to rendering.
package sanitizer
