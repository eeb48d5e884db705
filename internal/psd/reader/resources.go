package reader

import "strconv"

// parseImageResources reads the image resources section: a u32 length
// prefix followed by a sequence of variable-shape resource records
// filling exactly that many bytes.
func parseImageResources(c *parseCtx) error {
	const section = "image_resources"

	length, err := c.src.readU32()
	if err != nil {
		return err
	}
	if err := c.leaf(section+".length", 4, section); err != nil {
		return err
	}

	remaining := int64(length)
	index := 0
	for remaining > 0 {
		consumed, err := parseImageResourceRecord(c, section, index, remaining)
		if err != nil {
			return err
		}
		if consumed > remaining {
			return lengthOverflow(section)
		}
		remaining -= consumed
		index++
	}
	return nil
}

// parseImageResourceRecord reads one "8BIM"-style record:
//
//	signature:4, id:u16, name_length:u8, name (padded to even total,
//	floored at 1 byte), data_length:u32, data (padded to even length).
//
// It returns the number of bytes it consumed from the section payload.
func parseImageResourceRecord(c *parseCtx, section string, index int, budget int64) (int64, error) {
	container := section + ".resource_" + strconv.Itoa(index)
	var consumed int64

	if err := c.src.discardN(4); err != nil {
		return 0, err
	}
	consumed += 4
	if err := c.leaf(container+".signature", 4, container); err != nil {
		return 0, err
	}

	if err := c.src.discardN(2); err != nil {
		return 0, err
	}
	consumed += 2
	if err := c.leaf(container+".id", 2, container); err != nil {
		return 0, err
	}

	nameLen, err := c.src.readU8()
	if err != nil {
		return 0, err
	}
	consumed++
	if err := c.leaf(container+".name_length", 1, container); err != nil {
		return 0, err
	}

	nameWidth := pad(int64(nameLen)+1, 2) - 1
	if nameWidth < 1 {
		nameWidth = 1
	}
	if err := c.src.discardN(nameWidth); err != nil {
		return 0, err
	}
	consumed += nameWidth
	if err := c.leaf(container+".name", nameWidth, container); err != nil {
		return 0, err
	}

	dataLen, err := c.src.readU32()
	if err != nil {
		return 0, err
	}
	consumed += 4
	if err := c.leaf(container+".data_length", 4, container); err != nil {
		return 0, err
	}

	if consumed+int64(dataLen) > budget {
		return 0, lengthOverflow(container)
	}
	if dataLen > 0 {
		if err := c.src.discardN(int64(dataLen)); err != nil {
			return 0, err
		}
		if err := c.leaf(container+".data", int64(dataLen), container); err != nil {
			return 0, err
		}
		consumed += int64(dataLen)
	}

	if dataLen%2 != 0 {
		if err := c.src.discardN(1); err != nil {
			return 0, err
		}
		if err := c.leaf(container+".data_padding", 1, container); err != nil {
			return 0, err
		}
		consumed++
	}

	return consumed, nil
}
