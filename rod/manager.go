package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// DefaultMaxPages is the number of pages opened before the browser is
// relaunched. Chrome's resident memory grows with every page and never
// returns to baseline.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process and relaunches it after
// MaxPages pages. A replaced browser stays up until the pages opened on it
// are released. BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	retired  map[*instance]struct{}
	pages    int
	maxPages int
	closed   bool

	launch func() (*instance, error)
}

// instance is one launched browser and the pages still open on it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	shutdown func() error
	inflight int
	retired  bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages overrides DefaultMaxPages.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	return newBrowserManager(launch, opts...)
}

func newBrowserManager(launch func() (*instance, error), opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		retired:  make(map[*instance]struct{}),
		maxPages: DefaultMaxPages,
		launch:   launch,
	}
	for _, opt := range opts {
		opt(bm)
	}

	inst, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = inst
	return bm, nil
}

// Page opens a blank tab bound to ctx that presents itself with
// bookmarkai's browser user agent. Each call counts toward MaxPages. The
// returned release func closes the tab and must be called once the caller
// is done with it.
func (bm *BrowserManager) Page(ctx context.Context) (*rod.Page, func(), error) {
	inst, err := bm.acquire()
	if err != nil {
		return nil, nil, err
	}

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release(inst)
		return nil, nil, err
	}
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: bookmarkai.UserAgent}); err != nil {
		_ = page.Close()
		bm.release(inst)
		return nil, nil, err
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = page.Close()
			bm.release(inst)
		})
	}
	return page, release, nil
}

// Browser returns the current browser, relaunching it first when the page
// budget is spent.
func (bm *BrowserManager) Browser() *rod.Browser {
	inst, err := bm.acquire()
	if err != nil {
		return nil
	}
	bm.release(inst)
	return inst.browser
}

// Close shuts down the current browser and any replaced browser that still
// has pages open. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return nil
	}
	bm.closed = true
	stale := make([]*instance, 0, len(bm.retired))
	for inst := range bm.retired {
		stale = append(stale, inst)
	}
	clear(bm.retired)
	current := bm.current
	bm.mu.Unlock()

	for _, inst := range stale {
		_ = inst.shutdown()
	}
	return current.shutdown()
}

// LauncherPID returns the process ID of the browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// acquire counts a page against the budget and returns the browser
// instance to open it in. A failed relaunch keeps the old browser.
func (bm *BrowserManager) acquire() (*instance, error) {
	bm.mu.Lock()

	if bm.closed {
		bm.mu.Unlock()
		return nil, bookmarkai.Errorf(bookmarkai.EINVALID, "browser is closed")
	}

	var drained *instance
	if bm.pages >= bm.maxPages {
		if next, err := bm.launch(); err == nil {
			old := bm.current
			old.retired = true
			if old.inflight == 0 {
				drained = old
			} else {
				bm.retired[old] = struct{}{}
			}
			bm.current = next
			bm.pages = 0
		}
	}
	bm.pages++
	bm.current.inflight++
	inst := bm.current
	bm.mu.Unlock()

	if drained != nil {
		_ = drained.shutdown()
	}
	return inst, nil
}

// release ends one page's use of inst and shuts inst down when it has been
// replaced and no pages remain on it.
func (bm *BrowserManager) release(inst *instance) {
	bm.mu.Lock()
	inst.inflight--
	done := inst.retired && inst.inflight == 0 && !bm.closed
	if done {
		delete(bm.retired, inst)
	}
	bm.mu.Unlock()

	if done {
		_ = inst.shutdown()
	}
}

func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{
		browser:  browser,
		launcher: l,
		shutdown: func() error {
			err := browser.Close()
			l.Kill()
			return err
		},
	}, nil
}
