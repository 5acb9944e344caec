package config

import "sync"

// RenderSettings holds render configuration that the viewer changes at runtime
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	wireframe      bool
	showDebug      bool
	fpsLimit       int // 0 means unlimited
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 8, // default value
	showDebug:      true,
	fpsLimit:       120,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < 2 {
		distance = 2
	}
	if distance > 32 {
		distance = 32
	}

	globalRenderSettings.renderDistance = distance
}

// GetFarPlane returns the projection far plane for a chunk edge length
func GetFarPlane(chunkSize int) float32 {
	return float32(GetRenderDistance() * chunkSize)
}

// GetWireframe returns whether chunks are drawn as lines
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframe flips wireframe mode and returns the new value
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// GetShowDebug returns whether the debug line is printed
func GetShowDebug() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showDebug
}

// SetShowDebug sets whether the debug line is printed
func SetShowDebug(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showDebug = enabled
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap; values <= 0 remove it
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}
