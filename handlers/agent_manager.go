package handlers

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"flight-planner/models"
)

// AgentManager - registry of connected flight agents
type AgentManager struct {
	mu     sync.RWMutex
	agents map[string]*models.AgentInfo
}

// NewAgentManager - empty registry
func NewAgentManager() *AgentManager {
	return &AgentManager{
		agents: make(map[string]*models.AgentInfo),
	}
}

// Register - add an agent or refresh an existing one
func (m *AgentManager) Register(agentID string) (*models.AgentInfo, error) {
	if agentID == "" {
		return nil, fmt.Errorf("agent id is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if info, exists := m.agents[agentID]; exists {
		info.LastUpdate = now
		log.Printf("[Agents] re-registered: %s", agentID)
		return info, nil
	}

	info := &models.AgentInfo{
		ID:           agentID,
		RegisteredAt: now,
		LastUpdate:   now,
	}
	m.agents[agentID] = info
	log.Printf("[Agents] registered: %s", agentID)
	return info, nil
}

// UpdatePosition - store the latest reported position
func (m *AgentManager) UpdatePosition(agentID string, pos models.PositionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, exists := m.agents[agentID]
	if !exists {
		return fmt.Errorf("agent not found: %s", agentID)
	}
	info.Position = pos
	info.HasPosition = true
	info.LastUpdate = time.Now()
	return nil
}

// Get - copy of one agent
func (m *AgentManager) Get(agentID string) (models.AgentInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, exists := m.agents[agentID]
	if !exists {
		return models.AgentInfo{}, fmt.Errorf("agent not found: %s", agentID)
	}
	return *info, nil
}

// List - copies of all agents ordered by id
func (m *AgentManager) List() []models.AgentInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.AgentInfo, 0, len(m.agents))
	for _, info := range m.agents {
		result = append(result, *info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Remove - forget an agent
func (m *AgentManager) Remove(agentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.agents[agentID]; exists {
		delete(m.agents, agentID)
		log.Printf("[Agents] removed: %s", agentID)
	}
}
