package diagfmt

import (
	"fmt"
	"strconv"
	"strings"

	"pseudogo/internal/ast"
	"pseudogo/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil {
		return sp.String()
	}
	return sp.String()
}

// BuildProgramTree renders prog as a labeled tree, one node per statement
// (recursing into blocks, clauses, and routine bodies).
func BuildProgramTree(prog *ast.Program, fs *source.FileSet) string {
	root := &treeNode{label: fmt.Sprintf("Program (%d statements)", len(prog.Statements))}
	for _, s := range prog.Statements {
		root.children = append(root.children, buildStmtNode(s, fs))
	}
	block := renderTree(root)
	return strings.Join(block.lines, "\n")
}

func buildStmtNode(s ast.Stmt, fs *source.FileSet) *treeNode {
	switch n := s.(type) {
	case *ast.Declare:
		return &treeNode{label: fmt.Sprintf("Declare %s : %s (span: %s)", n.Name, formatType(n.Type), formatSpan(n.Sp, fs))}
	case *ast.Constant:
		return &treeNode{label: fmt.Sprintf("Constant %s (span: %s)", n.Name, formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.Value, fs)}}
	case *ast.Assign:
		return &treeNode{label: fmt.Sprintf("Assign (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.Target, fs), buildExprNode(n.Value, fs)}}
	case *ast.Input:
		return &treeNode{label: fmt.Sprintf("Input (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.Target, fs)}}
	case *ast.Output:
		node := &treeNode{label: fmt.Sprintf("Output (span: %s)", formatSpan(n.Sp, fs))}
		for _, a := range n.Args {
			node.children = append(node.children, buildExprNode(a, fs))
		}
		return node
	case *ast.If:
		node := &treeNode{label: fmt.Sprintf("If (span: %s)", formatSpan(n.Sp, fs))}
		node.children = append(node.children, buildExprNode(n.Cond, fs), buildBlockNode("Then", n.Then, fs))
		if n.Else != nil {
			node.children = append(node.children, buildBlockNode("Else", n.Else, fs))
		}
		return node
	case *ast.Case:
		node := &treeNode{label: fmt.Sprintf("Case (span: %s)", formatSpan(n.Sp, fs))}
		node.children = append(node.children, buildExprNode(n.Subject, fs))
		for i, cl := range n.Clauses {
			clauseNode := &treeNode{label: fmt.Sprintf("Clause[%d]", i), children: []*treeNode{buildExprNode(cl.Value, fs), buildStmtNode(cl.Body, fs)}}
			node.children = append(node.children, clauseNode)
		}
		if n.Otherwise != nil {
			node.children = append(node.children, &treeNode{label: "Otherwise", children: []*treeNode{buildStmtNode(n.Otherwise, fs)}})
		}
		return node
	case *ast.For:
		node := &treeNode{label: fmt.Sprintf("For %s (span: %s)", n.Iterator, formatSpan(n.Sp, fs))}
		node.children = append(node.children, buildExprNode(n.Start, fs), buildExprNode(n.End, fs))
		if n.Step != nil {
			node.children = append(node.children, buildExprNode(n.Step, fs))
		}
		node.children = append(node.children, buildBlockNode("Body", n.Body, fs))
		return node
	case *ast.Repeat:
		return &treeNode{label: fmt.Sprintf("Repeat (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildBlockNode("Body", n.Body, fs), buildExprNode(n.Until, fs)}}
	case *ast.While:
		return &treeNode{label: fmt.Sprintf("While (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.Cond, fs), buildBlockNode("Body", n.Body, fs)}}
	case *ast.ProcedureDef:
		return &treeNode{label: fmt.Sprintf("Procedure %s(%s) (span: %s)", n.Name, formatParams(n.Params), formatSpan(n.Sp, fs)), children: []*treeNode{buildBlockNode("Body", n.Body, fs)}}
	case *ast.FunctionDef:
		return &treeNode{label: fmt.Sprintf("Function %s(%s) RETURNS %s (span: %s)", n.Name, formatParams(n.Params), n.ReturnType.Basic, formatSpan(n.Sp, fs)), children: []*treeNode{buildBlockNode("Body", n.Body, fs)}}
	case *ast.CallStmt:
		node := &treeNode{label: fmt.Sprintf("Call %s (span: %s)", n.Name, formatSpan(n.Sp, fs))}
		for _, a := range n.Args {
			node.children = append(node.children, buildExprNode(a, fs))
		}
		return node
	case *ast.Return:
		node := &treeNode{label: fmt.Sprintf("Return (span: %s)", formatSpan(n.Sp, fs))}
		if n.Value != nil {
			node.children = append(node.children, buildExprNode(n.Value, fs))
		}
		return node
	case *ast.OpenFile:
		return &treeNode{label: fmt.Sprintf("OpenFile (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.File, fs)}}
	case *ast.ReadFile:
		return &treeNode{label: fmt.Sprintf("ReadFile (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.File, fs), buildExprNode(n.Target, fs)}}
	case *ast.WriteFile:
		return &treeNode{label: fmt.Sprintf("WriteFile (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.File, fs), buildExprNode(n.Value, fs)}}
	case *ast.CloseFile:
		return &treeNode{label: fmt.Sprintf("CloseFile (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.File, fs)}}
	}
	return &treeNode{label: "<unknown statement>"}
}

func buildBlockNode(label string, stmts []ast.Stmt, fs *source.FileSet) *treeNode {
	node := &treeNode{label: label}
	for _, s := range stmts {
		node.children = append(node.children, buildStmtNode(s, fs))
	}
	return node
}

func buildExprNode(e ast.Expr, fs *source.FileSet) *treeNode {
	switch n := e.(type) {
	case *ast.Literal:
		return &treeNode{label: fmt.Sprintf("Literal %s (span: %s)", n.Text, formatSpan(n.Sp, fs))}
	case *ast.Identifier:
		return &treeNode{label: fmt.Sprintf("Identifier %s (span: %s)", n.Name, formatSpan(n.Sp, fs))}
	case *ast.Unary:
		return &treeNode{label: fmt.Sprintf("Unary (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.Expr, fs)}}
	case *ast.Binary:
		return &treeNode{label: fmt.Sprintf("Binary (span: %s)", formatSpan(n.Sp, fs)), children: []*treeNode{buildExprNode(n.Left, fs), buildExprNode(n.Right, fs)}}
	case *ast.Call:
		node := &treeNode{label: fmt.Sprintf("Call %s (span: %s)", n.Name, formatSpan(n.Sp, fs))}
		for _, a := range n.Args {
			node.children = append(node.children, buildExprNode(a, fs))
		}
		return node
	case *ast.ArrayAccess:
		node := &treeNode{label: fmt.Sprintf("ArrayAccess %s (span: %s)", n.Name, formatSpan(n.Sp, fs))}
		for _, idx := range n.Indices {
			node.children = append(node.children, buildExprNode(idx, fs))
		}
		return node
	}
	return &treeNode{label: "<unknown expr>"}
}

func formatType(t ast.Type) string {
	if !t.IsArray {
		return string(t.Basic)
	}
	parts := make([]string, len(t.Dims))
	for i, d := range t.Dims {
		parts[i] = strconv.Itoa(d.Lower) + ":" + strconv.Itoa(d.Upper)
	}
	return fmt.Sprintf("ARRAY[%s] OF %s", strings.Join(parts, ", "), t.Elem)
}

func formatParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " : " + formatType(p.Type)
	}
	return strings.Join(parts, ", ")
}

// renderTree lays node and its descendants out as a centered ASCII tree,
// each level connected to its parent by a slash/bar/backslash spine.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := len(label)

	if len(node.children) == 0 {
		return treeBlock{lines: []string{label}, width: labelWidth, root: labelWidth / 2}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		if len(childBlocks[i].lines) > maxChildHeight {
			maxChildHeight = len(childBlocks[i].lines)
		}
	}

	const spacing = 3
	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
	} else {
		rootPos += shift
	}

	width := totalWidth
	rootLine := label
	if shift > 0 {
		rootLine = strings.Repeat(" ", shift) + label
	}
	if len(rootLine) < width {
		rootLine += strings.Repeat(" ", width-len(rootLine))
	} else if len(rootLine) > width {
		width = len(rootLine)
		for i := range positions {
			if positions[i] >= width {
				width = positions[i] + 1
			}
		}
		if len(rootLine) < width {
			rootLine += strings.Repeat(" ", width-len(rootLine))
		}
	}

	connector := make([]byte, width)
	for i := range connector {
		connector[i] = ' '
	}
	if rootPos >= width {
		needed := rootPos - width + 1
		rootLine += strings.Repeat(" ", needed)
		connector = append(connector, make([]byte, needed)...)
		width = len(connector)
	}
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	childLines := make([]string, maxChildHeight)
	for row := range maxChildHeight {
		var sb strings.Builder
		if childPrefix > 0 {
			sb.WriteString(strings.Repeat(" ", childPrefix))
		}
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			if len(line) < block.width {
				line += strings.Repeat(" ", block.width-len(line))
			}
			sb.WriteString(line)
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		rowStr := sb.String()
		if len(rowStr) < width {
			rowStr += strings.Repeat(" ", width-len(rowStr))
		}
		childLines[row] = rowStr
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, string(connector))
	lines = append(lines, childLines...)

	return treeBlock{lines: lines, width: width, root: rootPos}
}
