package auth

// SignInFormProps carries the re-render state of the login form. Values echo
// what the user submitted so a failed attempt does not wipe the fields.
type SignInFormProps struct {
	Email  string
	Errors FieldErrors
	Banner string
}

type SignUpFormProps struct {
	Nom    string
	Email  string
	Errors FieldErrors
	Banner string
}

func (s Strength) segmentClass() string {
	switch s {
	case StrengthWeak:
		return "bg-red-500"
	case StrengthFair:
		return "bg-orange-500"
	case StrengthGood:
		return "bg-yellow-500"
	case StrengthStrong:
		return "bg-green-500"
	}
	return "bg-white/10"
}
