package ecpay

import "strings"

// Operation groups.
const (
	GroupOperations    = "Operations"
	GroupQueries       = "Queries"
	GroupNotifications = "Notifications"
	GroupPrinting      = "Printing"
)

// groupMap maps alias prefixes to operation groups.
var groupMap = map[string]string{
	"operations":    GroupOperations,
	"operation":     GroupOperations,
	"ops":           GroupOperations,
	"queries":       GroupQueries,
	"query":         GroupQueries,
	"notifications": GroupNotifications,
	"notification":  GroupNotifications,
	"notify":        GroupNotifications,
	"printing":      GroupPrinting,
	"print":         GroupPrinting,
}

// DefaultSpecialWords returns the segments kept verbatim when casing names.
func DefaultSpecialWords() map[string]string {
	return map[string]string{"id": "ID"}
}

// ParseAlias splits "group.name" into the operation group and the name.
// An alias with no dot, or an unknown group, falls into Operations.
func ParseAlias(alias string) (group, name string, err error) {
	if alias == "" {
		return "", "", &ArgumentError{Reason: "alias must not be empty"}
	}

	prefix, rest, found := strings.Cut(alias, ".")
	if !found {
		return GroupOperations, alias, nil
	}

	group, ok := groupMap[strings.ToLower(prefix)]
	if !ok {
		group = GroupOperations
	}
	if rest == "" {
		return "", "", &ArgumentError{Target: alias, Reason: "alias needs a name"}
	}
	return group, rest, nil
}

// StudlyName converts a name to StudlyCase. Dots count as separators,
// segments are split on anything that is not a letter or digit, and
// segments found in special are used verbatim.
func StudlyName(value string, special map[string]string) string {
	segments := strings.FieldsFunc(value, func(r rune) bool {
		return !isASCIIAlnum(r)
	})

	var b strings.Builder
	for _, seg := range segments {
		lower := strings.ToLower(seg)
		if w, ok := special[lower]; ok {
			b.WriteString(w)
			continue
		}
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}
	return b.String()
}

// TypeName joins a namespace, group and cased name.
func TypeName(namespace, group, name string) string {
	return namespace + "/" + group + "/" + name
}

func isASCIIAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
