package ws

import (
	"context"
	"log/slog"
	"sync"

	"skillswap/internal/logger"
)

// Event - сообщение, которое сервер толкает клиенту
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WebSocketManager хранит подключения по userID (у одного пользователя может быть несколько вкладок)
type WebSocketManager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию клиентов до отмены ctx, затем закрывает все подключения
func (manager *WebSocketManager) Run(ctx context.Context) {
	defer close(manager.done)

	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			set, ok := manager.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				manager.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			manager.mu.Unlock()
			logger.Debug("WebSocket client registered", slog.String("user_id", client.UserID))

		case client := <-manager.unregister:
			manager.remove(client)

		case <-ctx.Done():
			manager.mu.Lock()
			for userID, set := range manager.clients {
				for client := range set {
					close(client.Send)
				}
				delete(manager.clients, userID)
			}
			manager.mu.Unlock()
			return
		}
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	set, ok := manager.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	close(client.Send)
	delete(set, client)
	if len(set) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("WebSocket client unregistered", slog.String("user_id", client.UserID))
}

// Register ставит клиента в очередь на регистрацию; false, если менеджер уже остановлен
func (manager *WebSocketManager) Register(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// Publish отправляет событие всем подключениям перечисленных пользователей.
// Не блокируется: клиент с переполненным буфером отключается.
func (manager *WebSocketManager) Publish(userIDs []string, eventType string, payload any) {
	event := Event{Type: eventType, Data: payload}

	manager.mu.RLock()
	defer manager.mu.RUnlock()

	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}

		for client := range manager.clients[userID] {
			select {
			case client.Send <- event:
			default:
				logger.Warn("WebSocket client too slow, disconnecting", slog.String("user_id", userID))
				go manager.Unregister(client)
			}
		}
	}
}

// GetClientCount возвращает количество открытых подключений
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	n := 0
	for _, set := range manager.clients {
		n += len(set)
	}
	return n
}

// IsClientConnected проверяет, есть ли у пользователя хотя бы одно подключение
func (manager *WebSocketManager) IsClientConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}
