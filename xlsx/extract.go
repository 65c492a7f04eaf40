package xlsx

// Extract reads a table from a spreadsheet file, using the reader for the
// file's declared format.
func Extract(path string) (Table, error) {
	switch FormatOf(path) {
	case Modern:
		return ReadModern(path)

	case Legacy:
		return ReadLegacy(path)

	case Delimited:
		return ReadDelimited(path)

	default:
		if err := exists(path); err != nil {
			return nil, err
		}

		return nil, &ReadError{File: path, Err: ErrUnsupportedFormat}
	}
}
