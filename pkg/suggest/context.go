package suggest

// IsWordChar reports whether r belongs to the identifier alphabet used for
// word boundaries: ASCII letters, digits, '_', '$' and '-'.
// The hyphen keeps CSS property names like background-color in one word.
func IsWordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '$' || r == '-':
		return true
	}
	return false
}

// ResolveContext finds the word touching cursor. A cursor outside the buffer
// is clamped to it; a cursor between non word characters yields an empty word
// at the cursor.
func ResolveContext(buffer string, cursor int) CursorContext {
	cursor = clamp(cursor, 0, len(buffer))

	start := cursor
	for start > 0 && IsWordChar(rune(buffer[start-1])) {
		start--
	}
	end := cursor
	for end < len(buffer) && IsWordChar(rune(buffer[end])) {
		end++
	}

	return CursorContext{
		Word:      buffer[start:end],
		WordStart: start,
		WordEnd:   end,
	}
}

// Splice replaces the context range of buffer with the entry insertion and
// returns the new buffer and caret offset.
func Splice(buffer string, ctx CursorContext, e Entry) (string, int) {
	start := clamp(ctx.WordStart, 0, len(buffer))
	end := clamp(ctx.WordEnd, start, len(buffer))
	insert := e.Insertion()
	return buffer[:start] + insert + buffer[end:], start + len(insert)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
