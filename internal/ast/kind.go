package ast

// Kind is the grammar rule that produced a node.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Blocks and files
	KindVerusBlock
	KindItemList

	// Items
	KindConst
	KindEnum
	KindExternBlock
	KindExternCrate
	KindFn
	KindImpl
	KindMacroRules
	KindMacroItem
	KindMacro2
	KindMod
	KindStatic
	KindStruct
	KindTrait
	KindTraitAlias
	KindTypeAlias
	KindUnion
	KindUse

	// Item parts
	KindAttr
	KindTriggerAttr
	KindVisibility
	KindPublish
	KindFnMode
	KindDataMode
	KindAbi
	KindGenericParams
	KindTypeParam
	KindLifetimeParam
	KindConstParam
	KindWhereClause
	KindWherePred
	KindBounds
	KindParamList
	KindParam
	KindSelfParam
	KindRetType
	KindRecordFields
	KindTupleFields
	KindField
	KindVariantList
	KindVariant
	KindUseTree
	KindUseGroup
	KindRename
	KindTokenTree
	KindAssocItems

	// Verus clauses
	KindRequires
	KindRecommends
	KindEnsures
	KindDecreases
	KindOpensInvariants
	KindNoUnwind
	KindInvariant
	KindInvariantExceptBreak
	KindProverHint

	// Statements
	KindBlock
	KindEmptyStmt
	KindProofBlock
	KindLetStmt
	KindAssignStmt
	KindExprStmt
	KindLetElse

	// Expressions
	KindLitExpr
	KindPathExpr
	KindParenExpr
	KindTupleExpr
	KindArrayExpr
	KindArrayRepeat
	KindUnsafeBlock
	KindAsyncBlock
	KindLabeledBlock
	KindUnaryExpr
	KindRefExpr
	KindIfExpr
	KindLetCond
	KindWhileExpr
	KindForExpr
	KindLoopExpr
	KindMatchExpr
	KindMatchArm
	KindClosure
	KindClosureParams
	KindReturnExpr
	KindBreakExpr
	KindContinueExpr
	KindRangeExpr
	KindQuantifier
	KindQuantParams
	KindAssertExpr
	KindAssumeExpr
	KindAssertForall
	KindMacroCall
	KindStructLit
	KindFieldInit
	KindStructBase
	KindFieldExpr
	KindMethodCall
	KindCallExpr
	KindArgList
	KindIndexExpr
	KindTryExpr
	KindViewExpr
	KindAwaitExpr
	KindCastExpr
	KindHasExpr
	KindIsExpr
	KindBinaryExpr
	KindAssignExpr
	KindBulletExpr
	KindAttrExpr

	// Paths
	KindPath
	KindPathSegment
	KindGenericArgs
	KindParenArgs
	KindAssocBinding
	KindAssocBound
	KindLifetimeArg
	KindQualifiedSelf

	// Types
	KindPathType
	KindRefType
	KindPtrType
	KindSliceType
	KindArrayType
	KindTupleType
	KindParenType
	KindNeverType
	KindInferType
	KindFnPtrType
	KindDynType
	KindImplType
	KindForType
	KindMacroType
	KindForBinder

	// Patterns
	KindWildcardPat
	KindRestPat
	KindIdentPat
	KindLitPat
	KindBoxPat
	KindRefPat
	KindTuplePat
	KindParenPat
	KindSlicePat
	KindTupleStructPat
	KindRecordPat
	KindFieldPat
	KindPathPat
	KindMacroPat
	KindConstBlockPat
	KindRangePat
	KindOrPat
)

var kindNames = [...]string{
	KindInvalid:              "Invalid",
	KindVerusBlock:           "VerusBlock",
	KindItemList:             "ItemList",
	KindConst:                "Const",
	KindEnum:                 "Enum",
	KindExternBlock:          "ExternBlock",
	KindExternCrate:          "ExternCrate",
	KindFn:                   "Fn",
	KindImpl:                 "Impl",
	KindMacroRules:           "MacroRules",
	KindMacroItem:            "MacroItem",
	KindMacro2:               "Macro2",
	KindMod:                  "Mod",
	KindStatic:               "Static",
	KindStruct:               "Struct",
	KindTrait:                "Trait",
	KindTraitAlias:           "TraitAlias",
	KindTypeAlias:            "TypeAlias",
	KindUnion:                "Union",
	KindUse:                  "Use",
	KindAttr:                 "Attr",
	KindTriggerAttr:          "TriggerAttr",
	KindVisibility:           "Visibility",
	KindPublish:              "Publish",
	KindFnMode:               "FnMode",
	KindDataMode:             "DataMode",
	KindAbi:                  "Abi",
	KindGenericParams:        "GenericParams",
	KindTypeParam:            "TypeParam",
	KindLifetimeParam:        "LifetimeParam",
	KindConstParam:           "ConstParam",
	KindWhereClause:          "WhereClause",
	KindWherePred:            "WherePred",
	KindBounds:               "Bounds",
	KindParamList:            "ParamList",
	KindParam:                "Param",
	KindSelfParam:            "SelfParam",
	KindRetType:              "RetType",
	KindRecordFields:         "RecordFields",
	KindTupleFields:          "TupleFields",
	KindField:                "Field",
	KindVariantList:          "VariantList",
	KindVariant:              "Variant",
	KindUseTree:              "UseTree",
	KindUseGroup:             "UseGroup",
	KindRename:               "Rename",
	KindTokenTree:            "TokenTree",
	KindAssocItems:           "AssocItems",
	KindRequires:             "Requires",
	KindRecommends:           "Recommends",
	KindEnsures:              "Ensures",
	KindDecreases:            "Decreases",
	KindOpensInvariants:      "OpensInvariants",
	KindNoUnwind:             "NoUnwind",
	KindInvariant:            "Invariant",
	KindInvariantExceptBreak: "InvariantExceptBreak",
	KindProverHint:           "ProverHint",
	KindBlock:                "Block",
	KindEmptyStmt:            "EmptyStmt",
	KindProofBlock:           "ProofBlock",
	KindLetStmt:              "LetStmt",
	KindAssignStmt:           "AssignStmt",
	KindExprStmt:             "ExprStmt",
	KindLetElse:              "LetElse",
	KindLitExpr:              "LitExpr",
	KindPathExpr:             "PathExpr",
	KindParenExpr:            "ParenExpr",
	KindTupleExpr:            "TupleExpr",
	KindArrayExpr:            "ArrayExpr",
	KindArrayRepeat:          "ArrayRepeat",
	KindUnsafeBlock:          "UnsafeBlock",
	KindAsyncBlock:           "AsyncBlock",
	KindLabeledBlock:         "LabeledBlock",
	KindUnaryExpr:            "UnaryExpr",
	KindRefExpr:              "RefExpr",
	KindIfExpr:               "IfExpr",
	KindLetCond:              "LetCond",
	KindWhileExpr:            "WhileExpr",
	KindForExpr:              "ForExpr",
	KindLoopExpr:             "LoopExpr",
	KindMatchExpr:            "MatchExpr",
	KindMatchArm:             "MatchArm",
	KindClosure:              "Closure",
	KindClosureParams:        "ClosureParams",
	KindReturnExpr:           "ReturnExpr",
	KindBreakExpr:            "BreakExpr",
	KindContinueExpr:         "ContinueExpr",
	KindRangeExpr:            "RangeExpr",
	KindQuantifier:           "Quantifier",
	KindQuantParams:          "QuantParams",
	KindAssertExpr:           "AssertExpr",
	KindAssumeExpr:           "AssumeExpr",
	KindAssertForall:         "AssertForall",
	KindMacroCall:            "MacroCall",
	KindStructLit:            "StructLit",
	KindFieldInit:            "FieldInit",
	KindStructBase:           "StructBase",
	KindFieldExpr:            "FieldExpr",
	KindMethodCall:           "MethodCall",
	KindCallExpr:             "CallExpr",
	KindArgList:              "ArgList",
	KindIndexExpr:            "IndexExpr",
	KindTryExpr:              "TryExpr",
	KindViewExpr:             "ViewExpr",
	KindAwaitExpr:            "AwaitExpr",
	KindCastExpr:             "CastExpr",
	KindHasExpr:              "HasExpr",
	KindIsExpr:               "IsExpr",
	KindBinaryExpr:           "BinaryExpr",
	KindAssignExpr:           "AssignExpr",
	KindBulletExpr:           "BulletExpr",
	KindAttrExpr:             "AttrExpr",
	KindPath:                 "Path",
	KindPathSegment:          "PathSegment",
	KindGenericArgs:          "GenericArgs",
	KindParenArgs:            "ParenArgs",
	KindAssocBinding:         "AssocBinding",
	KindLifetimeArg:          "LifetimeArg",
	KindAssocBound:           "AssocBound",
	KindQualifiedSelf:        "QualifiedSelf",
	KindPathType:             "PathType",
	KindRefType:              "RefType",
	KindPtrType:              "PtrType",
	KindSliceType:            "SliceType",
	KindArrayType:            "ArrayType",
	KindTupleType:            "TupleType",
	KindParenType:            "ParenType",
	KindNeverType:            "NeverType",
	KindInferType:            "InferType",
	KindFnPtrType:            "FnPtrType",
	KindDynType:              "DynType",
	KindImplType:             "ImplType",
	KindForType:              "ForType",
	KindMacroType:            "MacroType",
	KindForBinder:            "ForBinder",
	KindWildcardPat:          "WildcardPat",
	KindRestPat:              "RestPat",
	KindIdentPat:             "IdentPat",
	KindLitPat:               "LitPat",
	KindBoxPat:               "BoxPat",
	KindRefPat:               "RefPat",
	KindTuplePat:             "TuplePat",
	KindParenPat:             "ParenPat",
	KindSlicePat:             "SlicePat",
	KindTupleStructPat:       "TupleStructPat",
	KindRecordPat:            "RecordPat",
	KindFieldPat:             "FieldPat",
	KindPathPat:              "PathPat",
	KindMacroPat:             "MacroPat",
	KindConstBlockPat:        "ConstBlockPat",
	KindRangePat:             "RangePat",
	KindOrPat:                "OrPat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsItem reports whether k is a top-level item kind.
func (k Kind) IsItem() bool {
	return k >= KindConst && k <= KindUse
}

// IsType reports whether k is a type kind.
func (k Kind) IsType() bool {
	return k >= KindPathType && k <= KindForBinder
}

// IsPattern reports whether k is a pattern kind.
func (k Kind) IsPattern() bool {
	return k >= KindWildcardPat && k <= KindOrPat
}
