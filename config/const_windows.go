package config

const (
	_programdata = `C:\ProgramData\uhppoted`

	DEFAULT_WORKDIR     = _programdata + `\xlsx`
	DEFAULT_CREDENTIALS = _programdata + `\xlsx\.google\credentials.json`
)
