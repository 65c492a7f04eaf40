package config

const (
	_etc = "/usr/local/etc/com.github.uhppoted"
	_var = "/usr/local/var/com.github.uhppoted"

	DEFAULT_WORKDIR     = _var + "/xlsx"
	DEFAULT_CREDENTIALS = _etc + "/xlsx/.google/credentials.json"
)
