package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/sink"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// Words is the word list that entered the layout.
	Words []wordcloud.Word

	// Cloud is the computed (and possibly rescaled) layout.
	Cloud wordcloud.Cloud

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	Placed     int
	Unplaced   int
	Scale      float64
	ReadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	WordsHit  bool // Whether the word list came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete read → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRead(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	tf, err := loadTypeface(opts)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	defer tf.Close()

	result := &Result{}

	// Stage 1: Read
	readStart := time.Now()
	words, wordsHit, err := r.ReadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	result.Words = words
	result.Stats.WordCount = len(words)
	result.Stats.ReadTime = time.Since(readStart)
	result.CacheInfo.WordsHit = wordsHit

	r.Logger.Info("read words",
		"source", describe(opts),
		"words", len(words),
		"duration", result.Stats.ReadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	cloud, layoutHit, err := r.layoutWithCacheInfo(ctx, words, tf, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Cloud = cloud
	result.Stats.Unplaced = cloud.UnplacedCount()
	result.Stats.Placed = len(cloud.Words) - result.Stats.Unplaced
	result.Stats.Scale = cloud.Scale
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", result.Stats.Placed,
		"unplaced", result.Stats.Unplaced,
		"scale", cloud.Scale,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, cloud, tf, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ReadWithCacheInfo loads the word list and returns cache hit info. Inline
// word lists are never cached; parsed documents are cached by content hash.
func (r *Runner) ReadWithCacheInfo(ctx context.Context, opts Options) ([]wordcloud.Word, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRead(); err != nil {
		return nil, false, err
	}
	if len(opts.Words) > 0 {
		return TopWords(opts.Words, opts.MaxWords), false, nil
	}

	src, err := openSource(opts)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, string(src.format), src.name)
	start := time.Now()

	cacheKey := r.Keyer.WordsKey(cache.Hash(src.data), opts.WordsKeyOpts(src.format))
	if !opts.Refresh {
		if words, ok := r.cachedWords(ctx, cacheKey); ok {
			words = TopWords(words, opts.MaxWords)
			hooks.OnReadComplete(ctx, string(src.format), src.name, len(words), time.Since(start), nil)
			return words, true, nil
		}
	}

	words, err := parseSource(src, opts)
	hooks.OnReadComplete(ctx, string(src.format), src.name, len(words), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(words); err == nil {
		r.store(ctx, cacheKey, data, cache.TTLWords)
	}
	return words, false, nil
}

// Read is a convenience wrapper that calls ReadWithCacheInfo and discards the cache hit info.
func (r *Runner) Read(ctx context.Context, opts Options) ([]wordcloud.Word, error) {
	words, _, err := r.ReadWithCacheInfo(ctx, opts)
	return words, err
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, words []wordcloud.Word, opts Options) (wordcloud.Cloud, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return wordcloud.Cloud{}, false, err
	}
	tf, err := loadTypeface(opts)
	if err != nil {
		return wordcloud.Cloud{}, false, fmt.Errorf("load font: %w", err)
	}
	defer tf.Close()
	return r.layoutWithCacheInfo(ctx, words, tf, opts)
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, words []wordcloud.Word, opts Options) (wordcloud.Cloud, error) {
	c, _, err := r.LayoutWithCacheInfo(ctx, words, opts)
	return c, err
}

func (r *Runner) layoutWithCacheInfo(ctx context.Context, words []wordcloud.Word, tf *typeface, opts Options) (wordcloud.Cloud, bool, error) {
	wordsData, err := json.Marshal(words)
	if err != nil {
		return wordcloud.Cloud{}, false, fmt.Errorf("serialize words for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(wordsData), opts.LayoutKeyOpts(tf.hash))

	// A cached layout reports no progress.
	if !opts.Refresh {
		if data, hit, err := r.get(ctx, cacheKey); err == nil && hit {
			if cloud, err := sink.ReadJSON(data); err == nil {
				return cloud, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	cloud, err := ComputeLayout(ctx, words, tf.r, opts)
	if err != nil {
		return cloud, false, err
	}
	if data, err := sink.RenderJSON(cloud, sink.WithCompactJSON()); err == nil {
		r.store(ctx, cacheKey, data, cache.TTLLayout)
	}
	return cloud, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c wordcloud.Cloud, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	tf, err := loadTypeface(opts)
	if err != nil {
		return nil, false, fmt.Errorf("load font: %w", err)
	}
	defer tf.Close()
	return r.renderWithCacheInfo(ctx, c, tf, opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c wordcloud.Cloud, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, c wordcloud.Cloud, tf *typeface, opts Options) (map[string][]byte, bool, error) {
	layoutData, err := sink.RenderJSON(c, sink.WithCompactJSON())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, tf.hash))
			data, hit, err := r.get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, c, tf.r, tf.data, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, tf.hash))
		r.store(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedWords(ctx context.Context, key string) ([]wordcloud.Word, bool) {
	data, hit, err := r.get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var words []wordcloud.Word
	if err := json.Unmarshal(data, &words); err != nil || len(words) == 0 {
		return nil, false
	}
	return words, true
}

// get reads from the cache and reports the outcome to the cache hooks.
// Cache errors are logged and treated as misses.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false, err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, cache.KeyStage(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, cache.KeyStage(key))
	}
	return data, hit, nil
}

// store writes to the cache. Failures only cost a future recompute.
func (r *Runner) store(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyStage(key), len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
