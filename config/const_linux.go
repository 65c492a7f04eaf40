package config

const (
	_etc = "/usr/local/etc/uhppoted"
	_var = "/usr/local/var/uhppoted"

	DEFAULT_WORKDIR     = _var + "/xlsx"
	DEFAULT_CREDENTIALS = _etc + "/xlsx/.google/credentials.json"
)
