// Package sftp pools SFTP connections so that reading and writing many
// remote files reuses one SSH session per server.
package sftp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
)

var (
	globalManager *Manager
	once          sync.Once
)

// Default configuration values
const (
	DefaultPort              = 22
	DefaultMaxIdleTime       = 5 * time.Minute
	DefaultConnectTimeout    = 10 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryDelay        = 1 * time.Second
	DefaultKeepAliveInterval = 30 * time.Second
	DefaultMaxConnections    = 10
	DefaultCleanupInterval   = 2 * time.Minute
)

// ErrPoolFull is returned when a new connection would exceed MaxConnections.
var ErrPoolFull = errors.New("connection pool limit reached")

// ConnectionDetails holds the information needed to establish an SFTP connection
type ConnectionDetails struct {
	Hostname          string
	Port              int
	Username          string
	Password          string
	ConnectTimeout    time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	KeepAliveInterval time.Duration
}

// String returns the pool key of the connection.
func (cd ConnectionDetails) String() string {
	return fmt.Sprintf("%s@%s:%d", cd.Username, cd.Hostname, cd.Port)
}

func (cd *ConnectionDetails) applyDefaults() {
	if cd.Port == 0 {
		cd.Port = DefaultPort
	}
	if cd.ConnectTimeout == 0 {
		cd.ConnectTimeout = DefaultConnectTimeout
	}
	if cd.MaxRetries == 0 {
		cd.MaxRetries = DefaultMaxRetries
	}
	if cd.RetryDelay == 0 {
		cd.RetryDelay = DefaultRetryDelay
	}
	if cd.KeepAliveInterval == 0 {
		cd.KeepAliveInterval = DefaultKeepAliveInterval
	}
}

type clientInfo struct {
	client    *sftp.Client
	sshClient *ssh.Client
	lastUsed  time.Time
}

// ManagerConfig holds the configuration for the SFTP manager
type ManagerConfig struct {
	MaxIdleTime     time.Duration
	MaxConnections  int
	CleanupInterval time.Duration
	Logger          *zap.SugaredLogger
}

// Manager handles SFTP client pooling and lifecycle
type Manager struct {
	clients map[string]*clientInfo
	mu      sync.RWMutex
	config  ManagerConfig
	logger  *zap.SugaredLogger
	done    chan struct{}
	closed  sync.Once
}

// NewManager creates a Manager and starts its idle cleanup loop.
func NewManager(config ManagerConfig) *Manager {
	if config.MaxIdleTime == 0 {
		config.MaxIdleTime = DefaultMaxIdleTime
	}
	if config.MaxConnections == 0 {
		config.MaxConnections = DefaultMaxConnections
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = DefaultCleanupInterval
	}

	m := &Manager{
		clients: make(map[string]*clientInfo),
		config:  config,
		logger:  log.Nop(config.Logger),
		done:    make(chan struct{}),
	}
	go m.cleanup()
	return m
}

// GetGlobalManager returns the global SFTP manager instance, creating it if needed
func GetGlobalManager() *Manager {
	once.Do(func() {
		globalManager = NewManager(ManagerConfig{Logger: log.Logger()})
	})
	return globalManager
}

// GetClient is a convenience function that uses the global manager
func GetClient(ctx context.Context, details ConnectionDetails) (*sftp.Client, error) {
	return GetGlobalManager().GetClient(ctx, details)
}

// GetClient returns a pooled client for details, dialing with retries when
// none is alive.
func (m *Manager) GetClient(ctx context.Context, details ConnectionDetails) (*sftp.Client, error) {
	details.applyDefaults()
	key := details.String()

	if client, ok := m.getExistingClient(key); ok {
		return client, nil
	}

	m.mu.RLock()
	full := len(m.clients) >= m.config.MaxConnections
	m.mu.RUnlock()
	if full {
		return nil, fmt.Errorf("%w (%d)", ErrPoolFull, m.config.MaxConnections)
	}

	var err error
	for attempt := 0; attempt <= details.MaxRetries; attempt++ {
		var client *sftp.Client
		if client, err = m.createNewClient(details); err == nil {
			return client, nil
		}
		m.logger.Debugw("sftp connect failed", "server", key, "attempt", attempt+1, "error", err)
		if attempt == details.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(details.RetryDelay):
		}
	}
	return nil, fmt.Errorf("failed to create client after %d attempts: %w", details.MaxRetries+1, err)
}

func (m *Manager) getExistingClient(key string) (*sftp.Client, bool) {
	m.mu.Lock()
	info, exists := m.clients[key]
	if exists {
		info.lastUsed = time.Now()
	}
	m.mu.Unlock()
	if !exists {
		return nil, false
	}

	if _, err := info.client.Getwd(); err == nil {
		return info.client, true
	}

	m.logger.Debugw("dropping dead sftp connection", "server", key)
	m.mu.Lock()
	delete(m.clients, key)
	m.mu.Unlock()
	m.closeInfo(key, info)
	return nil, false
}

func (m *Manager) createNewClient(details ConnectionDetails) (*sftp.Client, error) {
	sshConfig := &ssh.ClientConfig{
		User: details.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(details.Password),
		},
		// TODO: verify against known_hosts once a host key option exists.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         details.ConnectTimeout,
	}

	sshClient, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", details.Hostname, details.Port), sshConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SSH: %w", err)
	}

	if details.KeepAliveInterval > 0 {
		go m.keepAlive(sshClient, details.KeepAliveInterval)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, fmt.Errorf("failed to create SFTP client: %w", err)
	}

	m.mu.Lock()
	m.clients[details.String()] = &clientInfo{
		client:    sftpClient,
		sshClient: sshClient,
		lastUsed:  time.Now(),
	}
	m.mu.Unlock()

	return sftpClient, nil
}

func (m *Manager) keepAlive(client *ssh.Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, _, err := client.SendRequest("keepalive@openssh.com", true, nil); err != nil {
				return
			}
		case <-m.done:
			return
		}
	}
}

// cleanup periodically closes idle connections.
func (m *Manager) cleanup() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle(time.Now())
		case <-m.done:
			return
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, info := range m.clients {
		if now.Sub(info.lastUsed) > m.config.MaxIdleTime {
			m.closeInfo(key, info)
			delete(m.clients, key)
		}
	}
}

func (m *Manager) closeInfo(key string, info *clientInfo) {
	if info.client != nil {
		if err := info.client.Close(); err != nil {
			m.logger.Debugw("error closing SFTP client", "server", key, "error", err)
		}
	}
	if info.sshClient != nil {
		if err := info.sshClient.Close(); err != nil {
			m.logger.Debugw("error closing SSH client", "server", key, "error", err)
		}
	}
}

// Close closes all connections and stops the cleanup goroutine. It is safe
// to call more than once.
func (m *Manager) Close() {
	m.closed.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, info := range m.clients {
		m.closeInfo(key, info)
	}
	m.clients = make(map[string]*clientInfo)
}

// Stats returns when each pooled connection was last used.
func (m *Manager) Stats() map[string]time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]time.Time, len(m.clients))
	for key, info := range m.clients {
		stats[key] = info.lastUsed
	}
	return stats
}
