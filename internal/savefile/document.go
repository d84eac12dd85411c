package savefile

// Attr 元素属性，顺序敏感。
type Attr struct {
	Name  string
	Value string
}

// Node 文档元素。存档格式的布尔值用"空元素存在与否"表达，
// 因此空元素有两种形态：自闭合标记 <X /> 与成对容器 <X></X>，
// 由 Container 区分，二者不可互换。
type Node struct {
	Name      string
	Attrs     []Attr
	Text      string
	Children  []*Node
	Container bool
}

// Elem 容器元素，空容器渲染为成对开闭标签。
func Elem(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children, Container: true}
}

// TextElem 单行文本元素 <Name>text</Name>。
func TextElem(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// MarkElem 存在性布尔 <Name />。
func MarkElem(name string) *Node {
	return &Node{Name: name}
}

// WithAttr 追加一条属性，返回自身便于链式构造。
func (n *Node) WithAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Append 追加子元素。
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	n.Container = true
	return n
}

// Child 按名查找第一个直接子元素，不存在返回 nil。
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AttrValue 按名取属性值，不存在返回空串。
func (n *Node) AttrValue(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Document 一份完整的存档文档：Root 属性加有序顶层块。
//
// InlineRoot 控制 Root 开标签的排版：地形文档是单行
// <Root MapWidth="23">，剧本文档是逐行属性的多行形态。
type Document struct {
	Class      Class
	RootAttrs  []Attr
	InlineRoot bool
	Blocks     []*Node
}

// BlocksNamed 按名收集顶层块，保持文档顺序。
func (d *Document) BlocksNamed(name string) []*Node {
	var out []*Node
	for _, b := range d.Blocks {
		if b.Name == name {
			out = append(out, b)
		}
	}
	return out
}

// RootAttr 按名取 Root 属性值。
func (d *Document) RootAttr(name string) string {
	for _, a := range d.RootAttrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}
