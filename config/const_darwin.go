package config

const (
	_etc = "/usr/local/etc/com.github.mjsigg"
	_var = "/usr/local/var/com.github.mjsigg"

	DEFAULT_WORKDIR     = _var + "/tkd-project-poller"
	DEFAULT_CREDENTIALS = _etc + "/tkd-project-poller/.google/credentials.json"
)
