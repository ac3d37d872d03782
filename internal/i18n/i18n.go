// Package i18n translates user-facing labels.
package i18n

import (
	"os"
	"strings"
	"sync"

	"phasewatch/internal/logs"

	"github.com/jeandeaual/go-locale"
)

// LangEnv forces the UI language.
const LangEnv = "PHASEWATCH_LANG"

var supported = []string{"en", "pt", "es", "ko"}

var (
	mu   sync.RWMutex
	lang = "en"
)

var translations = map[string]map[string]string{
	"Start Timers":  {"pt": "Iniciar Timers", "es": "Iniciar Temporizadores", "ko": "타이머 시작"},
	"Begin Check":   {"pt": "Iniciar Checagem", "es": "Iniciar Control", "ko": "체크 시작"},
	"Fail Check":    {"pt": "Falhar Checagem", "es": "Fallar Control", "ko": "체크 실패"},
	"10s Bind":      {"pt": "Bind 10s", "es": "Atadura 10s", "ko": "10초 바인드"},
	"15s Bind":      {"pt": "Bind 15s", "es": "Atadura 15s", "ko": "15초 바인드"},
	"Clear Device":  {"pt": "Limpar Dispositivo", "es": "Limpiar Dispositivo", "ko": "장치 제거"},
	"Add Device":    {"pt": "Adicionar Dispositivo", "es": "Añadir Dispositivo", "ko": "장치 추가"},
	"Reset Breath":  {"pt": "Resetar Sopro", "es": "Reiniciar Aliento", "ko": "브레스 리셋"},
	"Reset Dive":    {"pt": "Resetar Mergulho", "es": "Reiniciar Picado", "ko": "다이브 리셋"},
	"Reset Laser":   {"pt": "Resetar Laser", "es": "Reiniciar Láser", "ko": "레이저 리셋"},
	"Reset Arrows":  {"pt": "Resetar Flechas", "es": "Reiniciar Flechas", "ko": "화살 리셋"},
	"Reset Bombs":   {"pt": "Resetar Bombas", "es": "Reiniciar Bombas", "ko": "폭탄 리셋"},
	"Reset FMA":     {"pt": "Resetar FMA", "es": "Reiniciar FMA", "ko": "FMA 리셋"},
	"Close Overlay": {"pt": "Fechar Overlay", "es": "Cerrar Overlay", "ko": "오버레이 닫기"},
	"Start Overlay": {"pt": "Abrir Overlay", "es": "Abrir Overlay", "ko": "오버레이 시작"},
	"Settings":      {"pt": "Configurações", "es": "Configuración", "ko": "설정"},
	"Timers":        {"pt": "Timers", "es": "Temporizadores", "ko": "타이머"},
	"Hotkeys":       {"pt": "Atalhos", "es": "Atajos", "ko": "단축키"},
	"Record":        {"pt": "Gravar", "es": "Grabar", "ko": "녹화"},
	"Press keys…":   {"pt": "Pressione as teclas…", "es": "Pulse las teclas…", "ko": "키를 누르세요…"},
	"Initial":       {"pt": "Inicial", "es": "Inicial", "ko": "시작값"},
	"Red at":        {"pt": "Vermelho em", "es": "Rojo en", "ko": "경고"},
	"Auto reset":    {"pt": "Reinício automático", "es": "Reinicio automático", "ko": "자동 리셋"},
	"Quit":          {"pt": "Sair", "es": "Salir", "ko": "종료"},
	"Devices":       {"pt": "Dispositivos", "es": "Dispositivos", "ko": "장치"},
	"Phase":         {"pt": "Fase", "es": "Fase", "ko": "페이즈"},
	"Invalid value": {"pt": "Valor inválido", "es": "Valor inválido", "ko": "잘못된 값"},
	"device":        {"pt": "Dispositivo", "es": "Dispositivo", "ko": "장치"},
	"laser":         {"pt": "Laser", "es": "Láser", "ko": "레이저"},
	"arrow":         {"pt": "Flecha", "es": "Flecha", "ko": "화살"},
	"fma":           {"pt": "FMA", "es": "FMA", "ko": "FMA"},
	"breath":        {"pt": "Sopro", "es": "Aliento", "ko": "브레스"},
	"bomb":          {"pt": "Bomba", "es": "Bomba", "ko": "폭탄"},
	"dive":          {"pt": "Mergulho", "es": "Picado", "ko": "다이브"},
}

var defaultLabels = map[string]string{
	"device": "Device",
	"laser":  "Laser",
	"arrow":  "Arrow",
	"fma":    "FMA",
	"breath": "Breath",
	"bomb":   "Bomb",
	"dive":   "Dive",
}

// Detect picks the UI language. An explicit configured language wins, then
// PHASEWATCH_LANG, then the first system locale. Anything unsupported
// falls back to English.
func Detect(configured string) string {
	logger := logs.NewLogger("i18n")

	if configured = strings.TrimSpace(configured); configured != "" {
		logger.Debugf("language configured as %q", configured)
		return match(configured)
	}
	if forced := strings.TrimSpace(os.Getenv(LangEnv)); forced != "" {
		logger.Debugf("%s is set to %q", LangEnv, forced)
		return match(forced)
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		logger.WithError(err).Info("could not get user locale, defaulting to english")
		return "en"
	}
	if len(userLocales) == 0 {
		logger.Info("no user locale detected, defaulting to english")
		return "en"
	}
	logger.Debugf("detected user locale %s", userLocales[0])
	return match(userLocales[0])
}

func match(value string) string {
	value = strings.ToLower(value)
	for _, candidate := range supported {
		if strings.HasPrefix(value, candidate) {
			return candidate
		}
	}
	return "en"
}

// SetLang switches the active language.
func SetLang(value string) {
	mu.Lock()
	lang = match(value)
	mu.Unlock()
}

// Lang returns the active language.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T translates key into the active language.
func T(key string) string {
	current := Lang()
	if translated, ok := translations[key][current]; ok {
		return translated
	}
	if label, ok := defaultLabels[key]; ok {
		return label
	}
	return key
}
