package savefile

import (
	"bytes"

	"GallicWars/modules/kit/errx"
)

// ErrEncodingMismatch 文档前导与文档类别不符。
var ErrEncodingMismatch = errx.NewBiz("CODEC_ENCODING_MISMATCH", "文档编码前导与文档类别不匹配")

// Class 文档类别。地图与文本类文档带 UTF-8 BOM 前导，
// 事件类文档必须不带，解码时双向校验。
type Class uint8

const (
	ClassMap Class = iota
	ClassText
	ClassEvent
)

func (c Class) String() string {
	switch c {
	case ClassMap:
		return "map"
	case ClassText:
		return "text"
	case ClassEvent:
		return "event"
	}
	return "?"
}

// WantBOM 该类别是否要求 BOM 前导。
func (c Class) WantBOM() bool {
	return c != ClassEvent
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// checkPreamble 校验前导并返回去掉前导后的内容。
func checkPreamble(c Class, data []byte) ([]byte, error) {
	has := bytes.HasPrefix(data, utf8BOM)
	if c.WantBOM() && !has {
		return nil, ErrEncodingMismatch.
			WithData("class", c.String()).
			WithData("bom", false)
	}
	if !c.WantBOM() && has {
		return nil, ErrEncodingMismatch.
			WithData("class", c.String()).
			WithData("bom", true)
	}
	if has {
		return data[len(utf8BOM):], nil
	}
	return data, nil
}
