package ast

// Tag names the role a child plays inside its parent.
type Tag uint8

const (
	TagNone Tag = iota
	TagAttr
	TagVis
	TagPublish
	TagMode
	TagName
	TagGenerics
	TagParams
	TagRet
	TagWhere
	TagRequires
	TagRecommends
	TagEnsures
	TagDecreases
	TagOpensInvariants
	TagNoUnwind
	TagInvariant
	TagBody
	TagCond
	TagThen
	TagElse
	TagLhs
	TagRhs
	TagOp
	TagOperand
	TagType
	TagPattern
	TagInit
	TagTail
	TagStmt
	TagItem
	TagField
	TagVariant
	TagArg
	TagCallee
	TagReceiver
	TagIndex
	TagLabel
	TagTrait
	TagSelfType
	TagBound
	TagValue
	TagArm
	TagGuard
	TagScrutinee
	TagIter
	TagElem
	TagLen
	TagBase
	TagPath
	TagProver
	TagTrigger
	TagKeyword
	TagWhen
	TagVia
)

var tagNames = [...]string{
	TagNone:            "",
	TagAttr:            "attr",
	TagVis:             "vis",
	TagPublish:         "publish",
	TagMode:            "mode",
	TagName:            "name",
	TagGenerics:        "generics",
	TagParams:          "params",
	TagRet:             "ret",
	TagWhere:           "where",
	TagRequires:        "requires",
	TagRecommends:      "recommends",
	TagEnsures:         "ensures",
	TagDecreases:       "decreases",
	TagOpensInvariants: "opens_invariants",
	TagNoUnwind:        "no_unwind",
	TagInvariant:       "invariant",
	TagBody:            "body",
	TagCond:            "cond",
	TagThen:            "then",
	TagElse:            "else",
	TagLhs:             "lhs",
	TagRhs:             "rhs",
	TagOp:              "op",
	TagOperand:         "operand",
	TagType:            "type",
	TagPattern:         "pattern",
	TagInit:            "init",
	TagTail:            "tail",
	TagStmt:            "stmt",
	TagItem:            "item",
	TagField:           "field",
	TagVariant:         "variant",
	TagArg:             "arg",
	TagCallee:          "callee",
	TagReceiver:        "receiver",
	TagIndex:           "index",
	TagLabel:           "label",
	TagTrait:           "trait",
	TagSelfType:        "self_type",
	TagBound:           "bound",
	TagValue:           "value",
	TagArm:             "arm",
	TagGuard:           "guard",
	TagScrutinee:       "scrutinee",
	TagIter:            "iter",
	TagElem:            "elem",
	TagLen:             "len",
	TagBase:            "base",
	TagPath:            "path",
	TagProver:          "prover",
	TagTrigger:         "trigger",
	TagKeyword:         "keyword",
	TagWhen:            "when",
	TagVia:             "via",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "tag(?)"
}
