package ir

import (
	"strconv"
	"strings"
)

// Reserved register aliases.
const (
	RA = "%ra"
	FP = "%fp"
)

// LocalVar names a user variable bound in scope.
func LocalVar(ident string, scope uint64) string {
	return ident + "_" + strconv.FormatUint(scope, 10)
}

// TempVar names the n-th compiler temporary of a function, owned by scope.
func TempVar(n, scope uint64) string {
	return "$" + strconv.FormatUint(n, 10) + "_" + strconv.FormatUint(scope, 10)
}

func IsTempVar(name string) bool {
	return strings.HasPrefix(name, "$")
}

// BranchName is the backend label of a basic block.
func BranchName(funcScope uint64, bb int) string {
	return ".L" + strconv.FormatUint(funcScope, 10) + "_" + strconv.Itoa(bb)
}

// StrLabel names a read-only string constant.
func StrLabel(id uint32) string {
	return ".LC" + strconv.FormatUint(uint64(id), 10)
}
