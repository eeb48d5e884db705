package reader

import "strconv"

type channelDesc struct {
	id     int16
	length int64 // dialect-width value, includes the 2-byte compression method
}

// parseLayersAndMask reads the layer & mask information section: an
// outer length prefix, an inner layers_info block (layer count, one
// record per layer, then all channel pixel data back to back), a
// global layer mask, and a trailing additional-layer-information tail.
func parseLayersAndMask(c *parseCtx) error {
	const section = "layers_and_mask"

	width := int64(c.dialect.LengthWidth())
	length, err := c.src.readLength(c.dialect)
	if err != nil {
		return err
	}
	if err := c.leaf(section+".length", width, section); err != nil {
		return err
	}
	if length == 0 {
		return nil
	}

	budget := int64(length)
	var consumed int64

	n, err := parseLayersInfo(c, section)
	if err != nil {
		return err
	}
	consumed += n
	if consumed > budget {
		return lengthOverflow(section)
	}

	n, err = parseGlobalMask(c, section)
	if err != nil {
		return err
	}
	consumed += n
	if consumed > budget {
		return lengthOverflow(section)
	}

	if remainder := budget - consumed; remainder > 0 {
		if err := c.src.discardN(remainder); err != nil {
			return err
		}
		if err := c.leaf(section+".additional_layer_information", remainder, section); err != nil {
			return err
		}
	}
	return nil
}

func parseLayersInfo(c *parseCtx, section string) (int64, error) {
	const sub = "layers_info"
	container := section + "." + sub
	width := int64(c.dialect.LengthWidth())

	infoLength, err := c.src.readLength(c.dialect)
	if err != nil {
		return 0, err
	}
	if err := c.leaf(container+".length", width, container); err != nil {
		return 0, err
	}
	if infoLength == 0 {
		return width, nil
	}

	inner := int64(infoLength)
	var used int64

	rawCount, err := c.src.readI16()
	if err != nil {
		return 0, err
	}
	used += 2
	if err := c.leaf(container+".layer_count", 2, container); err != nil {
		return 0, err
	}
	count := int(rawCount)
	if count < 0 {
		count = -count
	}

	perLayerChannels := make([][]channelDesc, count)
	for i := 0; i < count; i++ {
		n, channels, err := parseLayerRecord(c, container, i)
		if err != nil {
			return 0, err
		}
		used += n
		perLayerChannels[i] = channels
		if used > inner {
			return 0, lengthOverflow(container)
		}
	}

	for i := 0; i < count; i++ {
		n, err := parseLayerChannelData(c, container, i, perLayerChannels[i])
		if err != nil {
			return 0, err
		}
		used += n
		if used > inner {
			return 0, lengthOverflow(container)
		}
	}

	if remainder := inner - used; remainder > 0 {
		if err := c.src.discardN(remainder); err != nil {
			return 0, err
		}
		if err := c.leaf(container+".padding", remainder, container); err != nil {
			return 0, err
		}
	}

	return width + inner, nil
}

func parseLayerRecord(c *parseCtx, parent string, index int) (int64, []channelDesc, error) {
	container := parent + ".layer_" + strconv.Itoa(index)
	var used int64

	if err := c.src.discardN(16); err != nil {
		return 0, nil, err
	}
	used += 16
	if err := c.leaf(container+".rect", 16, container); err != nil {
		return 0, nil, err
	}

	channelCount, err := c.src.readU16()
	if err != nil {
		return 0, nil, err
	}
	used += 2
	if err := c.leaf(container+".channel_count", 2, container); err != nil {
		return 0, nil, err
	}

	width := int64(c.dialect.LengthWidth())
	descLen := 2 + width
	channels := make([]channelDesc, channelCount)
	for j := 0; j < int(channelCount); j++ {
		id, err := c.src.readI16()
		if err != nil {
			return 0, nil, err
		}
		chLen, err := c.src.readLength(c.dialect)
		if err != nil {
			return 0, nil, err
		}
		channels[j] = channelDesc{id: id, length: int64(chLen)}
		used += descLen
		if err := c.leaf(container+".channel_desc_"+strconv.Itoa(j), descLen, container); err != nil {
			return 0, nil, err
		}
	}

	for _, f := range []struct {
		label string
		size  int64
	}{
		{"blend_signature", 4},
		{"blend_key", 4},
		{"opacity", 1},
		{"clipping", 1},
		{"flags", 1},
		{"filler", 1},
	} {
		if err := c.src.discardN(f.size); err != nil {
			return 0, nil, err
		}
		used += f.size
		if err := c.leaf(container+"."+f.label, f.size, container); err != nil {
			return 0, nil, err
		}
	}

	extraLen, err := c.src.readU32()
	if err != nil {
		return 0, nil, err
	}
	used += 4
	if err := c.leaf(container+".extra_data_length", 4, container); err != nil {
		return 0, nil, err
	}

	if extraLen > 0 {
		n, err := parseLayerExtraData(c, container, int64(extraLen))
		if err != nil {
			return 0, nil, err
		}
		used += n
	}

	return used, channels, nil
}

func parseLayerExtraData(c *parseCtx, parent string, budget int64) (int64, error) {
	var used int64

	maskLen, err := c.src.readU32()
	if err != nil {
		return 0, err
	}
	used += 4
	if err := c.leaf(parent+".mask.length", 4, parent); err != nil {
		return 0, err
	}
	if maskLen > 0 {
		if err := c.src.discardN(int64(maskLen)); err != nil {
			return 0, err
		}
		if err := c.leaf(parent+".mask.data", int64(maskLen), parent); err != nil {
			return 0, err
		}
		used += int64(maskLen)
	}

	blendingLen, err := c.src.readU32()
	if err != nil {
		return 0, err
	}
	used += 4
	if err := c.leaf(parent+".blending_ranges.length", 4, parent); err != nil {
		return 0, err
	}
	if blendingLen > 0 {
		if err := c.src.discardN(int64(blendingLen)); err != nil {
			return 0, err
		}
		if err := c.leaf(parent+".blending_ranges.data", int64(blendingLen), parent); err != nil {
			return 0, err
		}
		used += int64(blendingLen)
	}

	nameLen, err := c.src.readU8()
	if err != nil {
		return 0, err
	}
	used++
	if err := c.leaf(parent+".name_length", 1, parent); err != nil {
		return 0, err
	}
	nameWidth := pad(int64(nameLen)+1, 4) - 1
	if nameWidth < 1 {
		nameWidth = 1
	}
	if err := c.src.discardN(nameWidth); err != nil {
		return 0, err
	}
	used += nameWidth
	if err := c.leaf(parent+".name", nameWidth, parent); err != nil {
		return 0, err
	}

	if remainder := budget - used; remainder > 0 {
		if err := c.src.discardN(remainder); err != nil {
			return 0, err
		}
		if err := c.leaf(parent+".additional_data", remainder, parent); err != nil {
			return 0, err
		}
		used += remainder
	} else if remainder < 0 {
		return 0, lengthOverflow(parent + ".extra_data")
	}

	return used, nil
}

func parseLayerChannelData(c *parseCtx, parent string, layerIndex int, channels []channelDesc) (int64, error) {
	container := parent + ".layer_" + strconv.Itoa(layerIndex)
	var used int64
	for j, ch := range channels {
		chContainer := container + ".channel_" + strconv.Itoa(j)
		if ch.length < 2 {
			return 0, lengthOverflow(chContainer)
		}
		if err := c.src.discardN(2); err != nil {
			return 0, err
		}
		used += 2
		if err := c.leaf(chContainer+".compression_method", 2, chContainer); err != nil {
			return 0, err
		}
		dataLen := ch.length - 2
		if dataLen > 0 {
			if err := c.src.discardN(dataLen); err != nil {
				return 0, err
			}
			if err := c.leaf(chContainer+".data", dataLen, chContainer); err != nil {
				return 0, err
			}
			used += dataLen
		}
	}
	return used, nil
}

func parseGlobalMask(c *parseCtx, section string) (int64, error) {
	container := section + ".global_mask"
	var used int64

	length, err := c.src.readU32()
	if err != nil {
		return 0, err
	}
	used += 4
	if err := c.leaf(container+".length", 4, container); err != nil {
		return 0, err
	}
	if length > 0 {
		if err := c.src.discardN(int64(length)); err != nil {
			return 0, err
		}
		if err := c.leaf(container+".data", int64(length), container); err != nil {
			return 0, err
		}
		used += int64(length)
	}
	return used, nil
}
