package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yourusername/quorum-api/internal/service/stats"
)

// Hub раздает live-статистику вопросов подписанным клиентам.
// Подписки группируются по вопросу; новый голос рассылается всем
// подписчикам этого вопроса.
type Hub struct {
	// Подписчики по вопросам
	subscribers map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage

	mu sync.RWMutex
}

type broadcastMessage struct {
	questionID uint
	payload    []byte
}

// statsEvent - исходящее сообщение со свежей статистикой
type statsEvent struct {
	Type string        `json:"type"`
	Data *stats.Result `json:"data"`
}

// NewHub создает новый hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan broadcastMessage, 256),
	}
}

// Run обрабатывает регистрацию, отключение и рассылку. Запускается одной
// горутиной при старте приложения.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			clients, ok := h.subscribers[client.questionID]
			if !ok {
				clients = make(map[*Client]bool)
				h.subscribers[client.questionID] = clients
			}
			clients[client] = true
			h.mu.Unlock()
			log.Printf("[Hub] Подписка user=%d на вопрос #%d", client.userID, client.questionID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.subscribers[client.questionID]; ok {
				if _, subscribed := clients[client]; subscribed {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.subscribers, client.questionID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.subscribers[message.questionID] {
				select {
				case client.send <- message.payload:
				default:
					// Медленный клиент: буфер полон, пропускаем.
					// Следующий голос принесет актуальную статистику.
					log.Printf("[Hub] Буфер клиента user=%d переполнен, сообщение пропущено", client.userID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastQuestionStats рассылает свежую статистику подписчикам вопроса.
// Реализует service.StatsBroadcaster.
func (h *Hub) BroadcastQuestionStats(questionID uint, result *stats.Result) {
	payload, err := json.Marshal(statsEvent{Type: "question:stats", Data: result})
	if err != nil {
		log.Printf("[Hub] Ошибка сериализации статистики вопроса #%d: %v", questionID, err)
		return
	}

	select {
	case h.broadcast <- broadcastMessage{questionID: questionID, payload: payload}:
	default:
		log.Printf("[Hub] Канал рассылки переполнен, статистика вопроса #%d пропущена", questionID)
	}
}

// SubscriberCount возвращает число подписчиков вопроса
func (h *Hub) SubscriberCount(questionID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[questionID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Источники ограничивает CORS на HTTP-слое; для WebSocket пропускаем всех
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeClient апгрейдит HTTP-соединение и подписывает клиента на вопрос
func (h *Hub) ServeClient(w http.ResponseWriter, r *http.Request, userID, questionID uint) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, clientBufferSize),
		userID:     userID,
		questionID: questionID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}
