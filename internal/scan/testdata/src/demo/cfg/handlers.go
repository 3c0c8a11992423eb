package cfg

//optionsgen:dispatcher whitelist="int,Enum"
type IntHandler interface {
	HandleInt(name string, value any) error
}

//optionsgen:dispatcher
type AnyHandler interface {
	HandleAny(name string, value any) error
}
