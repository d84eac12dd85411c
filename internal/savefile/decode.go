package savefile

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"GallicWars/modules/kit/errx"
)

// ErrMalformed 文档结构无法解析。
var ErrMalformed = errx.NewBiz("CODEC_MALFORMED_DOCUMENT", "文档结构无法解析")

// Decode 把字节流还原成文档模型。先按类别校验编码前导，
// 再做流式 token 解析；Decode(Encode(d)) 与 d 等价。
func Decode(c Class, data []byte) (*Document, error) {
	body, err := checkPreamble(c, data)
	if err != nil {
		return nil, err
	}

	doc := &Document{Class: c, InlineRoot: inlineRoot(body)}
	dec := xml.NewDecoder(bytes.NewReader(body))

	var stack []*Node
	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrMalformed.WithCause(err).WithData("class", c.String())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !sawRoot {
				sawRoot = true
				for _, a := range t.Attr {
					doc.RootAttrs = append(doc.RootAttrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
				continue
			}
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			stack = append(stack, n)
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			s := string(t)
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				cur.Text += trimmed
				continue
			}
			// 空容器 <X></X> 与标记 <X /> 的区分依据：
			// 容器内必然有换行空白
			if strings.Contains(s, "\n") {
				cur.Container = true
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue // </Root>
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(n.Children) > 0 {
				n.Container = true
			}
			if len(stack) == 0 {
				doc.Blocks = append(doc.Blocks, n)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
		}
	}
	if !sawRoot {
		return nil, ErrMalformed.WithData("class", c.String()).WithData("reason", "missing root element")
	}
	return doc, nil
}

// inlineRoot 从原始文本判断 Root 开标签是单行还是逐行属性形态。
func inlineRoot(body []byte) bool {
	i := bytes.Index(body, []byte("<Root"))
	if i < 0 {
		return false
	}
	rest := body[i+len("<Root"):]
	if j := bytes.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return bytes.Contains(rest, []byte("="))
}
