package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toolhub/toolhub/internal/ai"
	"github.com/toolhub/toolhub/internal/catalog"
	"github.com/toolhub/toolhub/internal/chat"
	"github.com/toolhub/toolhub/internal/domain"
	"github.com/toolhub/toolhub/internal/editor"
	"github.com/toolhub/toolhub/internal/logger"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access infra endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient  *redis.Client    // Redis client connection
	Catalog      *catalog.Store   // In-memory tool catalog
	View         *domain.ViewModel
	Editor       *editor.Editor
	AI           *ai.Client    // disabled client when no API key, never nil
	Chat         *chat.Manager // chat session manager
	SeedTrigger  chan struct{} // Channel to trigger manual seed import (nil if seed file disabled)
}
