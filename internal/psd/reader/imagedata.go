package reader

import "io"

// parseImageData reads the final section: a u16 compression method
// followed by raw (possibly huge) pixel data running to EOF. Its
// length is never known up front; it streams to io.Discard and learns
// its own length from how many bytes that took.
func parseImageData(c *parseCtx) error {
	const section = "image_data"

	if err := c.src.discardN(2); err != nil {
		return err
	}
	if err := c.leaf(section+".compression_method", 2, section); err != nil {
		return err
	}

	n, err := c.src.copyToEOF(io.Discard)
	if err != nil {
		return err
	}
	if n > 0 {
		if err := c.leaf(section+".data", n, section); err != nil {
			return err
		}
	}
	return nil
}
