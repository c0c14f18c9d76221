//go:build !darwin

package config

const (
	_etc = "/usr/local/etc/tkd"
	_var = "/usr/local/var/tkd"

	DEFAULT_WORKDIR     = _var + "/tkd-project-poller"
	DEFAULT_CREDENTIALS = _etc + "/tkd-project-poller/.google/credentials.json"
)
