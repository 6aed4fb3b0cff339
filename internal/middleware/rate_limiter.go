package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-IP sliding window limiter, used on the login route
// to slow down credential stuffing.
type RateLimiter struct {
	mu       sync.Mutex
	ventana  time.Duration
	limite   int
	intentos map[string][]time.Time
}

func NewRateLimiter(limite int, ventana time.Duration) *RateLimiter {
	rl := &RateLimiter{
		ventana:  ventana,
		limite:   limite,
		intentos: make(map[string][]time.Time),
	}
	go rl.purgar()
	return rl
}

func (rl *RateLimiter) purgar() {
	for range time.Tick(rl.ventana) {
		rl.mu.Lock()
		corte := time.Now().Add(-rl.ventana)
		for ip, ts := range rl.intentos {
			vivos := ts[:0]
			for _, t := range ts {
				if t.After(corte) {
					vivos = append(vivos, t)
				}
			}
			if len(vivos) == 0 {
				delete(rl.intentos, ip)
			} else {
				rl.intentos[ip] = vivos
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) permitir(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ahora := time.Now()
	corte := ahora.Add(-rl.ventana)
	vivos := rl.intentos[ip][:0]
	for _, t := range rl.intentos[ip] {
		if t.After(corte) {
			vivos = append(vivos, t)
		}
	}
	if len(vivos) >= rl.limite {
		rl.intentos[ip] = vivos
		return false
	}
	rl.intentos[ip] = append(vivos, ahora)
	return true
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.permitir(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("demasiados intentos, espere un momento"))
			return
		}
		c.Next()
	}
}
