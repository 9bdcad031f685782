package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"

	"github.com/relatosdepapel/bookstore-backend/internal/config"
)

const (
	defaultBackoff = 500 * time.Millisecond
	maxBackoff     = 10 * time.Second
)

// errNotRegistered is returned by a heartbeat the registry no longer knows.
var errNotRegistered = errors.New("instance not registered")

// Eureka registers instances through the Eureka REST API and keeps the lease
// alive with periodic heartbeats until Deregister.
type Eureka struct {
	baseURL   string
	client    *http.Client
	clock     clockwork.Clock
	log       *slog.Logger
	interval  time.Duration
	attempts  uint64
	backoff   time.Duration
	appName   string
	advertise string

	mu     sync.Mutex
	inst   *Instance
	cancel context.CancelFunc
	done   chan struct{}
}

// NewEureka creates a Eureka registrar. cfg.AppName and cfg.InstanceHost
// override the instance's app and host when set.
func NewEureka(cfg config.DiscoveryConfig, client *http.Client, clock clockwork.Clock, logger *slog.Logger) *Eureka {
	return &Eureka{
		baseURL:   strings.TrimRight(cfg.EurekaURL, "/"),
		client:    client,
		clock:     clock,
		log:       logger.With("component", "discovery"),
		interval:  cfg.HeartbeatInterval,
		attempts:  cfg.RegisterAttempts,
		backoff:   defaultBackoff,
		appName:   cfg.AppName,
		advertise: cfg.InstanceHost,
	}
}

// Register announces inst, retrying transient failures with exponential
// backoff, then starts the heartbeat loop.
func (e *Eureka) Register(ctx context.Context, inst Instance) error {
	if e.appName != "" {
		inst.App = e.appName
	}
	if e.advertise != "" {
		inst.Host = e.advertise
	}
	inst.App = strings.ToUpper(inst.App)

	if err := e.registerWithRetry(ctx, inst); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		<-e.done
	}
	hbCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.inst = &inst
	e.cancel = cancel
	e.done = make(chan struct{})
	go e.heartbeatLoop(hbCtx, inst, e.done)

	e.log.InfoContext(ctx, "registered with eureka",
		slog.String("app", inst.App),
		slog.String("instance_id", inst.ID()),
	)
	return nil
}

// Deregister stops the heartbeat and removes the instance from the registry.
// It is a no-op when nothing is registered.
func (e *Eureka) Deregister(ctx context.Context) error {
	e.mu.Lock()
	inst, cancel, done := e.inst, e.cancel, e.done
	e.inst, e.cancel, e.done = nil, nil, nil
	e.mu.Unlock()

	if inst == nil {
		return nil
	}
	cancel()
	<-done

	if err := e.send(ctx, http.MethodDelete, e.instanceURL(*inst), nil); err != nil {
		return fmt.Errorf("eureka deregister %s: %w", inst.ID(), err)
	}
	e.log.InfoContext(ctx, "deregistered from eureka", slog.String("instance_id", inst.ID()))
	return nil
}

func (e *Eureka) registerWithRetry(ctx context.Context, inst Instance) error {
	body, err := json.Marshal(newRegistration(inst))
	if err != nil {
		return fmt.Errorf("eureka: encode instance: %w", err)
	}

	attempts := e.attempts
	if attempts == 0 {
		attempts = 1
	}
	b := retry.NewExponential(e.backoff)
	b = retry.WithCappedDuration(maxBackoff, b)
	b = retry.WithMaxRetries(attempts-1, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		err := e.send(ctx, http.MethodPost, e.baseURL+"/apps/"+inst.App, body)
		var se *statusError
		if errors.As(err, &se) && se.code < 500 {
			return err
		}
		if err != nil {
			e.log.WarnContext(ctx, "eureka register attempt failed", slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("eureka register %s: %w", inst.ID(), err)
	}
	return nil
}

func (e *Eureka) heartbeatLoop(ctx context.Context, inst Instance, done chan struct{}) {
	defer close(done)

	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.heartbeat(ctx, inst)
		}
	}
}

func (e *Eureka) heartbeat(ctx context.Context, inst Instance) {
	err := e.send(ctx, http.MethodPut, e.instanceURL(inst), nil)
	if err == nil || ctx.Err() != nil {
		return
	}
	if !errors.Is(err, errNotRegistered) {
		e.log.WarnContext(ctx, "eureka heartbeat failed", slog.String("error", err.Error()))
		return
	}

	// The registry evicted the lease; announce the instance again.
	body, err := json.Marshal(newRegistration(inst))
	if err != nil {
		return
	}
	if err := e.send(ctx, http.MethodPost, e.baseURL+"/apps/"+inst.App, body); err != nil {
		e.log.WarnContext(ctx, "eureka re-register failed", slog.String("error", err.Error()))
		return
	}
	e.log.InfoContext(ctx, "re-registered with eureka", slog.String("instance_id", inst.ID()))
}

func (e *Eureka) instanceURL(inst Instance) string {
	return e.baseURL + "/apps/" + inst.App + "/" + inst.ID()
}

type statusError struct {
	method string
	code   int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.method, e.code, e.body)
}

func (e *Eureka) send(ctx context.Context, method, url string, body []byte) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	switch {
	case resp.StatusCode == http.StatusNotFound && method == http.MethodPut:
		return errNotRegistered
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return &statusError{method: method, code: resp.StatusCode, body: strings.TrimSpace(string(msg))}
	}
}

// registration is the Eureka v2 instance document.
type registration struct {
	Instance instanceInfo `json:"instance"`
}

type instanceInfo struct {
	InstanceID       string         `json:"instanceId"`
	HostName         string         `json:"hostName"`
	App              string         `json:"app"`
	IPAddr           string         `json:"ipAddr"`
	VIPAddress       string         `json:"vipAddress"`
	SecureVIPAddress string         `json:"secureVipAddress"`
	Status           string         `json:"status"`
	Port             portInfo       `json:"port"`
	SecurePort       portInfo       `json:"securePort"`
	HomePageURL      string         `json:"homePageUrl"`
	StatusPageURL    string         `json:"statusPageUrl"`
	HealthCheckURL   string         `json:"healthCheckUrl"`
	DataCenterInfo   dataCenterInfo `json:"dataCenterInfo"`
}

type portInfo struct {
	Port    int    `json:"$"`
	Enabled string `json:"@enabled"`
}

type dataCenterInfo struct {
	Class string `json:"@class"`
	Name  string `json:"name"`
}

func newRegistration(inst Instance) registration {
	vip := strings.ToLower(inst.App)
	base := inst.BaseURL()
	return registration{Instance: instanceInfo{
		InstanceID:       inst.ID(),
		HostName:         inst.Host,
		App:              inst.App,
		IPAddr:           inst.Host,
		VIPAddress:       vip,
		SecureVIPAddress: vip,
		Status:           "UP",
		Port:             portInfo{Port: inst.Port, Enabled: "true"},
		SecurePort:       portInfo{Port: 443, Enabled: "false"},
		HomePageURL:      base + "/",
		StatusPageURL:    base + "/health",
		HealthCheckURL:   base + "/ready",
		DataCenterInfo: dataCenterInfo{
			Class: "com.netflix.appinfo.InstanceInfo$DefaultDataCenterInfo",
			Name:  "MyOwn",
		},
	}}
}
