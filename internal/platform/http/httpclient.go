// Package http builds outbound HTTP clients.
package http

import (
	"net"
	"net/http"
	"time"
)

// ClientOptions tunes the transport. Zero fields take the defaults below.
type ClientOptions struct {
	Timeout             time.Duration
	DialTimeout         time.Duration
	TLSHandshakeTimeout time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = 5 * time.Second
	}
	if o.TLSHandshakeTimeout <= 0 {
		o.TLSHandshakeTimeout = 5 * time.Second
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 100
	}
	if o.MaxIdleConnsPerHost <= 0 {
		o.MaxIdleConnsPerHost = 10
	}
	return o
}

// NewHTTPClient returns a client for calls to market data and language model
// APIs. http.DefaultClient has no timeout, so every outbound call goes
// through a client built here.
func NewHTTPClient(opts ClientOptions) *http.Client {
	opts = opts.withDefaults()
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: opts.TLSHandshakeTimeout,
	}
	return &http.Client{Timeout: opts.Timeout, Transport: t}
}
