package httpserver

import (
	"encoding/json"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
)

func InitFiberServer(appName string) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:               appName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		// handlers may keep request values after returning
		Immutable: true,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	return s
}

// ServeLocal starts app on an ephemeral loopback port and returns its base URL.
// Stop it with app.Shutdown.
func ServeLocal(app *fiber.App) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", errors.Wrap(err, "cannot listen on loopback")
	}

	go func() {
		_ = app.Listener(ln)
	}()

	return "http://" + ln.Addr().String(), nil
}
