package savefile

import (
	"bytes"
	"strings"
)

const xmlDecl = `<?xml version="1.0" encoding="utf-8"?>`

// Encode 把文档序列化成逐行确定的字节流。目标格式按位精确：
// 两空格缩进、属性逐行（元素缩进再进一级）、行尾 \n、末尾空行；
// 值一律是标识符风格的裸文本，不做实体转义。
func Encode(d *Document) []byte {
	var b bytes.Buffer
	if d.Class.WantBOM() {
		b.Write(utf8BOM)
	}
	b.WriteString(xmlDecl)
	b.WriteByte('\n')

	if d.InlineRoot {
		b.WriteString("<Root")
		for _, a := range d.RootAttrs {
			b.WriteString(" " + a.Name + `="` + a.Value + `"`)
		}
		b.WriteString(">\n")
	} else {
		b.WriteString("<Root\n")
		for i, a := range d.RootAttrs {
			b.WriteString("  " + a.Name + `="` + a.Value + `"`)
			if i == len(d.RootAttrs)-1 {
				b.WriteByte('>')
			}
			b.WriteByte('\n')
		}
	}

	for _, n := range d.Blocks {
		writeNode(&b, n, 1)
	}

	b.WriteString("</Root>\n")
	return b.Bytes()
}

func writeNode(b *bytes.Buffer, n *Node, level int) {
	indent := strings.Repeat("  ", level)

	if len(n.Attrs) > 0 {
		b.WriteString(indent + "<" + n.Name + "\n")
		attrIndent := indent + "  "
		for i, a := range n.Attrs {
			b.WriteString(attrIndent + a.Name + `="` + a.Value + `"`)
			if i < len(n.Attrs)-1 {
				b.WriteByte('\n')
				continue
			}
			// 末条属性行收口：纯文本元素在同一行闭合
			if n.Text != "" && len(n.Children) == 0 {
				b.WriteString(">" + n.Text + "</" + n.Name + ">\n")
				return
			}
			b.WriteString(">\n")
		}
		for _, c := range n.Children {
			writeNode(b, c, level+1)
		}
		b.WriteString(indent + "</" + n.Name + ">\n")
		return
	}

	switch {
	case n.Text != "":
		b.WriteString(indent + "<" + n.Name + ">" + n.Text + "</" + n.Name + ">\n")
	case n.Container || len(n.Children) > 0:
		b.WriteString(indent + "<" + n.Name + ">\n")
		for _, c := range n.Children {
			writeNode(b, c, level+1)
		}
		b.WriteString(indent + "</" + n.Name + ">\n")
	default:
		b.WriteString(indent + "<" + n.Name + " />\n")
	}
}
