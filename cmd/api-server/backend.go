package main

import (
	"HyperAdmin/config"
	"HyperAdmin/pkg/apiclient"
)

// newBackendClient BFF 不持有会话，token 由请求上下文透传
func newBackendClient(conf *config.Backend) *apiclient.Client {
	return apiclient.New(conf, nil)
}
