package actors

const (
	playerNameMinLength   = 5
	playerNameMaxLength   = 21
	playerPartMinLength   = 2
	playerPartMaxLength   = 15
	retainerNameMinLength = 3
	retainerNameMaxLength = 20
)

// VerifyPlayerName checks the forename/surname rules for character names.
func VerifyPlayerName[T ~string | ~[]byte](name T) bool {
	// Total no more than 20 characters + space.
	if len(name) < playerNameMinLength || len(name) > playerNameMaxLength {
		return false
	}

	split := -1
	for i := 0; i < len(name); i++ {
		if name[i] != ' ' {
			continue
		}
		// Forename and surname, no more spaces.
		if split >= 0 {
			return false
		}
		split = i
	}
	if split < 0 {
		return false
	}

	return checkNamePart(name[:split], playerPartMinLength, playerPartMaxLength) &&
		checkNamePart(name[split+1:], playerPartMinLength, playerPartMaxLength)
}

// VerifyRetainerName checks the single-part rules for retainer names.
func VerifyRetainerName[T ~string | ~[]byte](name T) bool {
	return checkNamePart(name, retainerNameMinLength, retainerNameMaxLength)
}

// VerifyPlayerNameRunes is VerifyPlayerName over decoded characters.
func VerifyPlayerNameRunes(name []rune) bool {
	s, ok := asciiString(name)
	return ok && VerifyPlayerName(s)
}

// VerifyRetainerNameRunes is VerifyRetainerName over decoded characters.
func VerifyRetainerNameRunes(name []rune) bool {
	s, ok := asciiString(name)
	return ok && VerifyRetainerName(s)
}

// asciiString narrows runes to bytes. Any non-ASCII character fails the
// grammar anyway, so rejecting it here keeps both variants in agreement.
func asciiString(name []rune) (string, bool) {
	b := make([]byte, len(name))
	for i, r := range name {
		if r < 0 || r > 0x7F {
			return "", false
		}
		b[i] = byte(r)
	}
	return string(b), true
}

func checkNamePart[T ~string | ~[]byte](part T, minLength, maxLength int) bool {
	if len(part) < minLength || len(part) > maxLength {
		return false
	}

	// Each part starts with a capitalized letter.
	if part[0] < 'A' || part[0] > 'Z' {
		return false
	}

	var last byte
	for i := 1; i < len(part); i++ {
		current := part[i]
		if current != '\'' && current != '-' && (current < 'a' || current > 'z') {
			return false
		}

		// Hyphens can not be used in succession, after or before apostrophes.
		if last == '\'' && current == '-' {
			return false
		}
		if last == '-' && (current == '-' || current == '\'') {
			return false
		}

		last = current
	}

	return part[len(part)-1] != '-'
}
