package ash

import "fmt"

// NodeKind tags every AST variant.
type NodeKind uint8

const (
	NodeModule NodeKind = iota
	NodeScope
	NodeNamedScope
	NodeDeclaration
	NodeStructDeclaration
	NodeBlockDeclaration
	NodeBufferDeclaration
	NodeStruct
	NodeLayout
	NodePushConstant
	NodeConst
	NodeDefine
	NodeInclude
	NodeFunction
	NodeFunctionArgument
	NodeAssign
	NodeBinaryOpAndAssign
	NodeReturn
	NodeIf
	NodeFor
	NodeDiscard
	NodeBreak
	NodeContinue
	NodeBinaryOp
	NodeConditional
	NodeCall
	NodeAccess
	NodeIndex
	NodeIncrement
	NodeDecrement
	NodeNegate
	NodeLogicalNot
	NodePrecedence
	NodeIdentifier
	NodeIntLiteral
	NodeFloatLiteral
	NodeBooleanLiteral
	NodeArrayLiteral
	NodeNoOp
)

var nodeNames = [...]string{
	NodeModule:            "Module",
	NodeScope:             "Scope",
	NodeNamedScope:        "NamedScope",
	NodeDeclaration:       "Declaration",
	NodeStructDeclaration: "StructDeclaration",
	NodeBlockDeclaration:  "BlockDeclaration",
	NodeBufferDeclaration: "BufferDeclaration",
	NodeStruct:            "Struct",
	NodeLayout:            "Layout",
	NodePushConstant:      "PushConstant",
	NodeConst:             "Const",
	NodeDefine:            "Define",
	NodeInclude:           "Include",
	NodeFunction:          "Function",
	NodeFunctionArgument:  "FunctionArgument",
	NodeAssign:            "Assign",
	NodeBinaryOpAndAssign: "BinaryOpAndAssign",
	NodeReturn:            "Return",
	NodeIf:                "If",
	NodeFor:               "For",
	NodeDiscard:           "Discard",
	NodeBreak:             "Break",
	NodeContinue:          "Continue",
	NodeBinaryOp:          "BinaryOp",
	NodeConditional:       "Conditional",
	NodeCall:              "Call",
	NodeAccess:            "Access",
	NodeIndex:             "Index",
	NodeIncrement:         "Increment",
	NodeDecrement:         "Decrement",
	NodeNegate:            "Negate",
	NodeLogicalNot:        "LogicalNot",
	NodePrecedence:        "Precedence",
	NodeIdentifier:        "Identifier",
	NodeIntLiteral:        "IntLiteral",
	NodeFloatLiteral:      "FloatLiteral",
	NodeBooleanLiteral:    "BooleanLiteral",
	NodeArrayLiteral:      "ArrayLiteral",
	NodeNoOp:              "NoOp",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeNames) {
		return nodeNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// Node is the base interface for all AST nodes. Children returns the owned
// child nodes in source order; leaves return nil.
type Node interface {
	Kind() NodeKind
	Pos() Span
	Children() []Node
}

// Stage is a pipeline stage selected by a named scope.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageFragment:
		return "Fragment"
	default:
		return fmt.Sprintf("Stage(%d)", s)
	}
}

// ParseStage maps a stage name ("vertex", "Vertex", "vert", ...) to a Stage.
func ParseStage(name string) (Stage, error) {
	switch name {
	case "vertex", "Vertex", "vert":
		return StageVertex, nil
	case "fragment", "Fragment", "frag":
		return StageFragment, nil
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}

// Module is one parsed source file.
type Module struct {
	File       string
	Statements []Node
	// Structs is the struct arena, set by struct reference resolution.
	Structs *StructTable
	Span    Span
}

// Scope is a braced statement list.
type Scope struct {
	Statements []Node
	Span       Span
}

// NamedScope holds statements that only exist for one stage.
type NamedScope struct {
	Stage      Stage
	Statements []Node
	Span       Span
}

// DeclType is the type tag of a declaration.
type DeclType uint8

const (
	DeclFloat DeclType = iota
	DeclInt
	DeclFloat2
	DeclInt2
	DeclFloat3
	DeclInt3
	DeclFloat4
	DeclInt4
	DeclMat3
	DeclMat4
	DeclBool
	DeclVoid
	DeclSampler2D
	DeclStruct
	DeclBlock
	DeclBuffer
)

var declTypeNames = [...]string{
	DeclFloat:     "float",
	DeclInt:       "int",
	DeclFloat2:    "float2",
	DeclInt2:      "int2",
	DeclFloat3:    "float3",
	DeclInt3:      "int3",
	DeclFloat4:    "float4",
	DeclInt4:      "int4",
	DeclMat3:      "mat3",
	DeclMat4:      "mat4",
	DeclBool:      "bool",
	DeclVoid:      "void",
	DeclSampler2D: "sampler2D",
	DeclStruct:    "struct",
	DeclBlock:     "block",
	DeclBuffer:    "buffer",
}

// String returns the source spelling of builtin types.
func (t DeclType) String() string {
	if int(t) < len(declTypeNames) {
		return declTypeNames[t]
	}
	return fmt.Sprintf("DeclType(%d)", t)
}

// Decl is implemented by every declaration variant.
type Decl interface {
	Node
	DeclType() DeclType
	// DeclName is the declared variable name; empty for return types.
	DeclName() string
	// DeclCount is the element count: 1 scalar, 0 unsized, >1 fixed array.
	DeclCount() int
	// TypeName is the name the declaration refers to its type by.
	TypeName() string
}

// Declaration is a variable of a builtin type.
type Declaration struct {
	Type  DeclType
	Name  string
	Count int
	Span  Span
}

// StructHandle indexes a struct definition in a StructTable.
type StructHandle uint32

// StructDeclaration is a variable whose type is a named struct. Struct is
// nil until struct reference resolution binds it.
type StructDeclaration struct {
	StructName string
	Name       string
	Count      int
	Struct     *StructHandle
	Span       Span
}

// BlockDeclaration is an interface block declared inline:
// Name { members } instance[count].
type BlockDeclaration struct {
	BlockName    string
	Name         string
	Count        int
	Declarations []Decl
	Span         Span
}

// BufferDeclaration is a buffer block: buffer Name { members } instance[count].
type BufferDeclaration struct {
	BlockName    string
	Name         string
	Count        int
	Declarations []Decl
	Span         Span
}

// Struct is a struct definition.
type Struct struct {
	Name         string
	Declarations []Decl
	Span         Span
}

// Tag is one layout or push constant qualifier. Value is empty for bare keys.
type Tag struct {
	Key   string
	Value string
}

// Tags is an ordered qualifier list.
type Tags []Tag

// Get returns the value of key.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (t Tags) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// set replaces an existing key in place or appends a new one.
func (t Tags) set(key, value string) Tags {
	for i := range t {
		if t[i].Key == key {
			t[i].Value = value
			return t
		}
	}
	return append(t, Tag{Key: key, Value: value})
}

// LayoutKind is the storage qualifier of a layout declaration.
type LayoutKind uint8

const (
	LayoutIn LayoutKind = iota
	LayoutOut
	LayoutUniform
	LayoutReadonly
	// LayoutBuffer has no storage keyword of its own; the buffer
	// declaration carries it.
	LayoutBuffer
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutIn:
		return "in"
	case LayoutOut:
		return "out"
	case LayoutUniform:
		return "uniform"
	case LayoutReadonly:
		return "readonly"
	case LayoutBuffer:
		return ""
	default:
		return fmt.Sprintf("LayoutKind(%d)", k)
	}
}

// Layout is layout(tags) kind declaration;
type Layout struct {
	Tags        Tags
	LayoutKind  LayoutKind
	Declaration Decl
	Span        Span
}

// PushConstant is push(tags) { members };
type PushConstant struct {
	Tags         Tags
	Declarations []Decl
	Span         Span
}

// Const wraps a declaration marked const. An initializer appears as the
// right side of an enclosing Assign.
type Const struct {
	Declaration Decl
	Span        Span
}

// Define is #define Name value.
type Define struct {
	Name  string
	Value Node
	Span  Span
}

// Include is #include "Target" written in SourceFile.
type Include struct {
	SourceFile string
	Target     string
	Span       Span
}

// Function is a function definition.
type Function struct {
	Name      string
	Return    Decl
	Arguments []*FunctionArgument
	Body      *Scope
	Span      Span
}

// FunctionArgument is one parameter; Input is false for out parameters.
type FunctionArgument struct {
	Declaration Decl
	Input       bool
	Span        Span
}

// Assign is Left = Right.
type Assign struct {
	Left  Node
	Right Node
	Span  Span
}

// BinaryOpAndAssign is a compound assignment such as Left += Right.
type BinaryOpAndAssign struct {
	Left  Node
	Right Node
	Op    Operator
	Span  Span
}

// Return is return Value; Value may be nil.
type Return struct {
	Value Node
	Span  Span
}

// If is an if statement. Else is an *If, a *Scope or a *NoOp.
type If struct {
	Condition Node
	Then      *Scope
	Else      Node
	Span      Span
}

// For is for(Init; Condition; Update) Body. Missing parts are *NoOp.
type For struct {
	Init      Node
	Condition Node
	Update    Node
	Body      *Scope
	Span      Span
}

// Discard is the fragment discard statement.
type Discard struct{ Span Span }

// Break is a loop break.
type Break struct{ Span Span }

// Continue is a loop continue.
type Continue struct{ Span Span }

// NoOp is an absent statement or expression.
type NoOp struct{ Span Span }

// Operator is a binary operator.
type Operator uint8

const (
	OpAnd Operator = iota
	OpOr
	OpNot
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpMod
)

var operatorText = [...]string{
	OpAnd:          "&&",
	OpOr:           "||",
	OpNot:          "!",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpMod:          "%",
}

// String returns the operator as written in source.
func (o Operator) String() string {
	if int(o) < len(operatorText) {
		return operatorText[o]
	}
	return fmt.Sprintf("Operator(%d)", o)
}

// BinaryOp is Left Op Right.
type BinaryOp struct {
	Left  Node
	Right Node
	Op    Operator
	Span  Span
}

// Conditional is Condition ? Then : Else.
type Conditional struct {
	Condition Node
	Then      Node
	Else      Node
	Span      Span
}

// Call is Name(Arguments...).
type Call struct {
	Name      string
	Arguments []Node
	Span      Span
}

// Access is Left.Right.
type Access struct {
	Left  Node
	Right Node
	Span  Span
}

// Index is Left[Index].
type Index struct {
	Left  Node
	Index Node
	Span  Span
}

// Increment is ++Target or Target++.
type Increment struct {
	Target Node
	Post   bool
	Span   Span
}

// Decrement is --Target or Target--.
type Decrement struct {
	Target Node
	Post   bool
	Span   Span
}

// Negate is -Operand.
type Negate struct {
	Operand Node
	Span    Span
}

// LogicalNot is !Operand.
type LogicalNot struct {
	Operand Node
	Span    Span
}

// Precedence is a parenthesized expression.
type Precedence struct {
	Inner Node
	Span  Span
}

// Identifier is a name reference.
type Identifier struct {
	Name string
	Span Span
}

// IntLiteral is an integer constant.
type IntLiteral struct {
	Value int64
	Span  Span
}

// FloatLiteral is a floating point constant.
type FloatLiteral struct {
	Value float64
	Span  Span
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
	Span  Span
}

// ArrayLiteral is { Elements... }.
type ArrayLiteral struct {
	Elements []Node
	Span     Span
}

func declNodes(decls []Decl) []Node {
	if len(decls) == 0 {
		return nil
	}
	nodes := make([]Node, len(decls))
	for i, d := range decls {
		nodes[i] = d
	}
	return nodes
}

func (*Module) Kind() NodeKind            { return NodeModule }
func (*Scope) Kind() NodeKind             { return NodeScope }
func (*NamedScope) Kind() NodeKind        { return NodeNamedScope }
func (*Declaration) Kind() NodeKind       { return NodeDeclaration }
func (*StructDeclaration) Kind() NodeKind { return NodeStructDeclaration }
func (*BlockDeclaration) Kind() NodeKind  { return NodeBlockDeclaration }
func (*BufferDeclaration) Kind() NodeKind { return NodeBufferDeclaration }
func (*Struct) Kind() NodeKind            { return NodeStruct }
func (*Layout) Kind() NodeKind            { return NodeLayout }
func (*PushConstant) Kind() NodeKind      { return NodePushConstant }
func (*Const) Kind() NodeKind             { return NodeConst }
func (*Define) Kind() NodeKind            { return NodeDefine }
func (*Include) Kind() NodeKind           { return NodeInclude }
func (*Function) Kind() NodeKind          { return NodeFunction }
func (*FunctionArgument) Kind() NodeKind  { return NodeFunctionArgument }
func (*Assign) Kind() NodeKind            { return NodeAssign }
func (*BinaryOpAndAssign) Kind() NodeKind { return NodeBinaryOpAndAssign }
func (*Return) Kind() NodeKind            { return NodeReturn }
func (*If) Kind() NodeKind                { return NodeIf }
func (*For) Kind() NodeKind               { return NodeFor }
func (*Discard) Kind() NodeKind           { return NodeDiscard }
func (*Break) Kind() NodeKind             { return NodeBreak }
func (*Continue) Kind() NodeKind          { return NodeContinue }
func (*NoOp) Kind() NodeKind              { return NodeNoOp }
func (*BinaryOp) Kind() NodeKind          { return NodeBinaryOp }
func (*Conditional) Kind() NodeKind       { return NodeConditional }
func (*Call) Kind() NodeKind              { return NodeCall }
func (*Access) Kind() NodeKind            { return NodeAccess }
func (*Index) Kind() NodeKind             { return NodeIndex }
func (*Increment) Kind() NodeKind         { return NodeIncrement }
func (*Decrement) Kind() NodeKind         { return NodeDecrement }
func (*Negate) Kind() NodeKind            { return NodeNegate }
func (*LogicalNot) Kind() NodeKind        { return NodeLogicalNot }
func (*Precedence) Kind() NodeKind        { return NodePrecedence }
func (*Identifier) Kind() NodeKind        { return NodeIdentifier }
func (*IntLiteral) Kind() NodeKind        { return NodeIntLiteral }
func (*FloatLiteral) Kind() NodeKind      { return NodeFloatLiteral }
func (*BooleanLiteral) Kind() NodeKind    { return NodeBooleanLiteral }
func (*ArrayLiteral) Kind() NodeKind      { return NodeArrayLiteral }

func (n *Module) Pos() Span            { return n.Span }
func (n *Scope) Pos() Span             { return n.Span }
func (n *NamedScope) Pos() Span        { return n.Span }
func (n *Declaration) Pos() Span       { return n.Span }
func (n *StructDeclaration) Pos() Span { return n.Span }
func (n *BlockDeclaration) Pos() Span  { return n.Span }
func (n *BufferDeclaration) Pos() Span { return n.Span }
func (n *Struct) Pos() Span            { return n.Span }
func (n *Layout) Pos() Span            { return n.Span }
func (n *PushConstant) Pos() Span      { return n.Span }
func (n *Const) Pos() Span             { return n.Span }
func (n *Define) Pos() Span            { return n.Span }
func (n *Include) Pos() Span           { return n.Span }
func (n *Function) Pos() Span          { return n.Span }
func (n *FunctionArgument) Pos() Span  { return n.Span }
func (n *Assign) Pos() Span            { return n.Span }
func (n *BinaryOpAndAssign) Pos() Span { return n.Span }
func (n *Return) Pos() Span            { return n.Span }
func (n *If) Pos() Span                { return n.Span }
func (n *For) Pos() Span               { return n.Span }
func (n *Discard) Pos() Span           { return n.Span }
func (n *Break) Pos() Span             { return n.Span }
func (n *Continue) Pos() Span          { return n.Span }
func (n *NoOp) Pos() Span              { return n.Span }
func (n *BinaryOp) Pos() Span          { return n.Span }
func (n *Conditional) Pos() Span       { return n.Span }
func (n *Call) Pos() Span              { return n.Span }
func (n *Access) Pos() Span            { return n.Span }
func (n *Index) Pos() Span             { return n.Span }
func (n *Increment) Pos() Span         { return n.Span }
func (n *Decrement) Pos() Span         { return n.Span }
func (n *Negate) Pos() Span            { return n.Span }
func (n *LogicalNot) Pos() Span        { return n.Span }
func (n *Precedence) Pos() Span        { return n.Span }
func (n *Identifier) Pos() Span        { return n.Span }
func (n *IntLiteral) Pos() Span        { return n.Span }
func (n *FloatLiteral) Pos() Span      { return n.Span }
func (n *BooleanLiteral) Pos() Span    { return n.Span }
func (n *ArrayLiteral) Pos() Span      { return n.Span }

func (n *Module) Children() []Node      { return n.Statements }
func (n *Scope) Children() []Node       { return n.Statements }
func (n *NamedScope) Children() []Node  { return n.Statements }
func (*Declaration) Children() []Node   { return nil }
func (*StructDeclaration) Children() []Node {
	// The bound struct is a lookup, not an owned child.
	return nil
}
func (n *BlockDeclaration) Children() []Node  { return declNodes(n.Declarations) }
func (n *BufferDeclaration) Children() []Node { return declNodes(n.Declarations) }
func (n *Struct) Children() []Node            { return declNodes(n.Declarations) }
func (n *Layout) Children() []Node            { return []Node{n.Declaration} }
func (n *PushConstant) Children() []Node      { return declNodes(n.Declarations) }
func (n *Const) Children() []Node             { return []Node{n.Declaration} }
func (n *Define) Children() []Node            { return []Node{n.Value} }
func (*Include) Children() []Node             { return nil }

func (n *Function) Children() []Node {
	nodes := make([]Node, 0, len(n.Arguments)+2)
	nodes = append(nodes, n.Return)
	for _, arg := range n.Arguments {
		nodes = append(nodes, arg)
	}
	return append(nodes, n.Body)
}

func (n *FunctionArgument) Children() []Node  { return []Node{n.Declaration} }
func (n *Assign) Children() []Node            { return []Node{n.Left, n.Right} }
func (n *BinaryOpAndAssign) Children() []Node { return []Node{n.Left, n.Right} }

func (n *Return) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

func (n *If) Children() []Node          { return []Node{n.Condition, n.Then, n.Else} }
func (n *For) Children() []Node         { return []Node{n.Init, n.Condition, n.Update, n.Body} }
func (*Discard) Children() []Node       { return nil }
func (*Break) Children() []Node         { return nil }
func (*Continue) Children() []Node      { return nil }
func (*NoOp) Children() []Node          { return nil }
func (n *BinaryOp) Children() []Node    { return []Node{n.Left, n.Right} }
func (n *Conditional) Children() []Node { return []Node{n.Condition, n.Then, n.Else} }
func (n *Call) Children() []Node        { return n.Arguments }
func (n *Access) Children() []Node      { return []Node{n.Left, n.Right} }
func (n *Index) Children() []Node       { return []Node{n.Left, n.Index} }
func (n *Increment) Children() []Node   { return []Node{n.Target} }
func (n *Decrement) Children() []Node   { return []Node{n.Target} }
func (n *Negate) Children() []Node      { return []Node{n.Operand} }
func (n *LogicalNot) Children() []Node  { return []Node{n.Operand} }
func (n *Precedence) Children() []Node  { return []Node{n.Inner} }
func (*Identifier) Children() []Node    { return nil }
func (*IntLiteral) Children() []Node    { return nil }
func (*FloatLiteral) Children() []Node  { return nil }
func (*BooleanLiteral) Children() []Node {
	return nil
}
func (n *ArrayLiteral) Children() []Node { return n.Elements }

func (d *Declaration) DeclType() DeclType { return d.Type }
func (d *Declaration) DeclName() string   { return d.Name }
func (d *Declaration) DeclCount() int     { return d.Count }
func (d *Declaration) TypeName() string   { return d.Type.String() }

func (d *StructDeclaration) DeclType() DeclType { return DeclStruct }
func (d *StructDeclaration) DeclName() string   { return d.Name }
func (d *StructDeclaration) DeclCount() int     { return d.Count }
func (d *StructDeclaration) TypeName() string   { return d.StructName }

func (d *BlockDeclaration) DeclType() DeclType { return DeclBlock }
func (d *BlockDeclaration) DeclName() string   { return d.Name }
func (d *BlockDeclaration) DeclCount() int     { return d.Count }
func (d *BlockDeclaration) TypeName() string   { return d.BlockName }

func (d *BufferDeclaration) DeclType() DeclType { return DeclBuffer }
func (d *BufferDeclaration) DeclName() string   { return d.Name }
func (d *BufferDeclaration) DeclCount() int     { return d.Count }
func (d *BufferDeclaration) TypeName() string   { return d.BlockName }
