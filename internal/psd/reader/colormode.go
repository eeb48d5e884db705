package reader

// parseColorMode reads the color-mode section: a u32 length prefix
// followed by that many payload bytes (used only by indexed-color
// images; opaque to this parser either way).
func parseColorMode(c *parseCtx) error {
	const container = "color_mode_section"

	length, err := c.src.readU32()
	if err != nil {
		return err
	}
	if err := c.leaf(container+".length", 4, container); err != nil {
		return err
	}

	if length > 0 {
		if err := c.src.discardN(int64(length)); err != nil {
			return err
		}
		if err := c.leaf(container+".data", int64(length), container); err != nil {
			return err
		}
	}
	return nil
}
