// Package crawl orchestrates migrating a portfolio's media: fetching the
// legacy pages, matching and downloading images, and recording the results.
package crawl

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/bloom"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of simultaneous fetches or downloads.
const DefaultConcurrency = 4

// Bloom filter sizing for image URL deduplication across one run.
const (
	seenExpectedURLs      = 10000
	seenFalsePositiveRate = 0.001
)

// Harvester downloads project images from a legacy site into an AssetStore
// and records what it saved. The store is committed before any image,
// page or file record is written, and aborted when a harvest fails.
//
// Fetcher, Downloader and Store are required. Matcher is required by
// HarvestPrimary, Analyzer by HarvestPages. Extractor and Converter enable
// page markdown. Images, Pages, Writer and RateLimiter are optional.
type Harvester struct {
	Fetcher     folio.Fetcher
	Downloader  folio.Downloader
	Matcher     folio.ImageMatcher
	Analyzer    folio.PageAnalyzer
	Extractor   folio.Extractor
	Converter   folio.Converter
	Store       folio.AssetStore
	Images      folio.ImageService
	Pages       folio.PageService
	Writer      folio.PageWriter
	RateLimiter folio.DomainLimiter

	// PublicPrefix is prepended to store paths to form Image.LocalPath,
	// the path the new site serves the file from.
	PublicPrefix string
	Concurrency  int
	RetryDelays  []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu   sync.Mutex
	seen *bloom.Filter
}

// Phase identifies which stage of a harvest a progress event belongs to.
type Phase int

const (
	PhasePages Phase = iota
	PhaseImages
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Phase     Phase
	Completed int
	Total     int
	ProjectID string
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// Failure records a project step that did not succeed.
type Failure struct {
	ProjectID string
	URL       string
	Err       error
}

// PrimaryResult holds the outcome of HarvestPrimary.
type PrimaryResult struct {
	Images    []*folio.Image
	Unmatched []*folio.Project
	Failed    []Failure
	Bytes     int64
}

// PageResult holds the outcome of HarvestPages.
type PageResult struct {
	Pages   []*folio.Page
	Images  []*folio.Image
	Skipped []*folio.Project
	Failed  []Failure
	Bytes   int64
}

type downloadJob struct {
	position  int
	projectID string
	url       string
	kind      folio.ImageKind
	dir       string
	stem      string
	index     int
}

type downloadOutcome struct {
	job   downloadJob
	image *folio.Image
	bytes int64
	err   error
}

type pageOutcome struct {
	position int
	project  *folio.Project
	page     *folio.Page
	images   []folio.PageImage
	err      error
}

// HarvestPrimary fetches the listing page once, matches every project
// title against it and downloads each project's best match as
// "<id><ext>". Projects without a match are reported in Unmatched.
// Individual download failures are reported in Failed; a listing fetch or
// match failure aborts the harvest.
func (h *Harvester) HarvestPrimary(ctx context.Context, listingURL string, projects []*folio.Project, progress ProgressFunc) (_ *PrimaryResult, err error) {
	defer h.abortOnError(&err)

	for _, p := range projects {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	base, err := url.Parse(listingURL)
	if err != nil || base.Host == "" {
		return nil, folio.Errorf(folio.EINVALID, "invalid listing URL: %q", listingURL)
	}

	html, err := FetchWithRetryDelays(ctx, listingURL, h.limitedFetch, nil, h.retryDelays())
	if err != nil {
		return nil, fmt.Errorf("fetching listing page: %w", err)
	}

	labels := make([]string, len(projects))
	for i, p := range projects {
		labels[i] = p.Title
	}
	matches, err := h.Matcher.MatchImages(html, labels)
	if err != nil {
		return nil, err
	}
	if len(matches) != len(projects) {
		return nil, folio.Errorf(folio.EINTERNAL, "matcher returned %d results for %d projects", len(matches), len(projects))
	}

	result := &PrimaryResult{}
	var jobs []downloadJob
	for i, p := range projects {
		primary := matches[i].Primary()
		if primary == "" {
			result.Unmatched = append(result.Unmatched, p)
			continue
		}
		ref, err := url.Parse(primary)
		if err != nil {
			result.Failed = append(result.Failed, Failure{ProjectID: p.ID, URL: primary, Err: err})
			continue
		}
		jobs = append(jobs, downloadJob{
			position:  len(jobs),
			projectID: p.ID,
			url:       base.ResolveReference(ref).String(),
			kind:      folio.ImageKindPrimary,
			stem:      p.ID,
		})
	}

	for _, o := range h.download(ctx, jobs, progress) {
		if o.err != nil {
			result.Failed = append(result.Failed, Failure{ProjectID: o.job.projectID, URL: o.job.url, Err: o.err})
			continue
		}
		result.Images = append(result.Images, o.image)
		result.Bytes += o.bytes
	}
	if err := h.commit(ctx, result.Images); err != nil {
		return nil, err
	}

	if err := h.recordImages(ctx, result.Images); err != nil {
		return nil, err
	}
	return result, nil
}

// HarvestPages scrapes each project's case-study page: text is converted
// to markdown and every content image is downloaded under the project's
// directory. An image URL is downloaded at most once per Harvester, even
// when several pages share it. Projects without a page URL are reported
// in Skipped.
func (h *Harvester) HarvestPages(ctx context.Context, projects []*folio.Project, progress ProgressFunc) (_ *PageResult, err error) {
	defer h.abortOnError(&err)

	result := &PageResult{}
	var targets []*folio.Project
	for _, p := range projects {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if p.PageURL == "" {
			result.Skipped = append(result.Skipped, p)
			continue
		}
		targets = append(targets, p)
	}

	scraped := h.scrapePages(ctx, targets, progress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var jobs []downloadJob
	for _, s := range scraped {
		if s.err != nil {
			result.Failed = append(result.Failed, Failure{ProjectID: s.project.ID, URL: s.project.PageURL, Err: s.err})
			continue
		}
		result.Pages = append(result.Pages, s.page)
		jobs = append(jobs, h.pageImageJobs(s, len(jobs))...)
	}

	for _, o := range h.download(ctx, jobs, progress) {
		if o.err != nil {
			result.Failed = append(result.Failed, Failure{ProjectID: o.job.projectID, URL: o.job.url, Err: o.err})
			continue
		}
		result.Images = append(result.Images, o.image)
		result.Bytes += o.bytes
	}
	if err := h.commit(ctx, result.Images); err != nil {
		return nil, err
	}

	for _, page := range result.Pages {
		if h.Pages != nil {
			if err := h.Pages.CreatePage(ctx, page); err != nil {
				return nil, fmt.Errorf("recording page %s: %w", page.ProjectID, err)
			}
		}
		if h.Writer != nil {
			if err := h.Writer.WritePage(ctx, page); err != nil {
				return nil, fmt.Errorf("writing page %s: %w", page.ProjectID, err)
			}
		}
	}
	if err := h.recordImages(ctx, result.Images); err != nil {
		return nil, err
	}
	return result, nil
}

// scrapePages fetches and analyzes pages concurrently, returning outcomes
// in project order.
func (h *Harvester) scrapePages(ctx context.Context, projects []*folio.Project, progress ProgressFunc) []pageOutcome {
	total := len(projects)
	notify(progress, ProgressEvent{Type: ProgressStarted, Phase: PhasePages, Total: total})

	resultCh := make(chan pageOutcome, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	go func() {
		for i, p := range projects {
			g.Go(func() error {
				resultCh <- h.scrapePage(gctx, i, p)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]pageOutcome, total)
	completed := 0
	for o := range resultCh {
		completed++
		outcomes[o.position] = o
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Phase:     PhasePages,
			Completed: completed,
			Total:     total,
			ProjectID: o.project.ID,
			URL:       o.project.PageURL,
		}
		if o.err != nil {
			event.Type = ProgressFailed
			event.Error = o.err
		}
		notify(progress, event)
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Phase: PhasePages, Completed: total, Total: total})
	return outcomes
}

func (h *Harvester) scrapePage(ctx context.Context, position int, p *folio.Project) pageOutcome {
	out := pageOutcome{position: position, project: p}

	html, err := FetchWithRetryDelays(ctx, p.PageURL, h.limitedFetch, nil, h.retryDelays())
	if err != nil {
		out.err = err
		return out
	}

	analysis, err := h.Analyzer.AnalyzePage(html, p.PageURL)
	if err != nil {
		out.err = err
		return out
	}

	page := &folio.Page{
		ProjectID: p.ID,
		SourceURL: p.PageURL,
		CaseStudy: analysis.CaseStudy,
		FetchedAt: h.now(),
	}

	if h.Extractor != nil && h.Converter != nil {
		extracted, err := h.Extractor.Extract(html)
		if err != nil {
			out.err = err
			return out
		}
		markdown, err := h.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			out.err = err
			return out
		}
		page.Title = extracted.Title
		page.Content = markdown
	}

	if cs := analysis.CaseStudy; cs != nil && cs.Title != "" {
		page.Title = cs.Title
	}
	if page.Title == "" {
		page.Title = p.Title
	}
	page.ContentHash = ComputeHash([]byte(page.Content))

	out.page = page
	out.images = analysis.Images
	return out
}

// pageImageJobs turns a page's images into download jobs, dropping URLs
// this Harvester has already queued and keeping file names unique within
// each directory.
func (h *Harvester) pageImageJobs(s pageOutcome, offset int) []downloadJob {
	used := make(map[string]bool)
	var jobs []downloadJob

	for i, img := range s.images {
		if !h.markSeen(img.URL) {
			continue
		}

		dir := s.project.ID
		var stem string
		switch img.Kind {
		case folio.ImageKindOldVersion:
			stem = "old-version"
		case folio.ImageKindDesignSystem:
			dir = path.Join(dir, "design-system")
			stem = imageStem(img.URL, i)
		default:
			stem = imageStem(img.URL, i)
		}

		jobs = append(jobs, downloadJob{
			position:  offset + len(jobs),
			projectID: s.project.ID,
			url:       img.URL,
			kind:      img.Kind,
			dir:       dir,
			stem:      uniqueStem(used, dir, stem),
			index:     i,
		})
	}
	return jobs
}

// download runs jobs concurrently and returns outcomes in job order.
func (h *Harvester) download(ctx context.Context, jobs []downloadJob, progress ProgressFunc) []downloadOutcome {
	total := len(jobs)
	notify(progress, ProgressEvent{Type: ProgressStarted, Phase: PhaseImages, Total: total})

	resultCh := make(chan downloadOutcome, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	go func() {
		for _, job := range jobs {
			g.Go(func() error {
				resultCh <- h.downloadOne(gctx, job)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]downloadOutcome, total)
	completed := 0
	for o := range resultCh {
		completed++
		outcomes[o.job.position] = o
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Phase:     PhaseImages,
			Completed: completed,
			Total:     total,
			ProjectID: o.job.projectID,
			URL:       o.job.url,
		}
		if o.err != nil {
			event.Type = ProgressFailed
			event.Error = o.err
		}
		notify(progress, event)
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Phase: PhaseImages, Completed: total, Total: total})
	return outcomes
}

func (h *Harvester) downloadOne(ctx context.Context, job downloadJob) downloadOutcome {
	out := downloadOutcome{job: job}

	asset, err := WithRetry(ctx, h.retryDelays(), func(ctx context.Context) (*folio.Asset, error) {
		if err := waitForURL(ctx, h.RateLimiter, job.url); err != nil {
			return nil, err
		}
		return h.Downloader.Download(ctx, job.url)
	}, nil)
	if err != nil {
		out.err = err
		return out
	}

	relPath := path.Join(job.dir, job.stem+ImageExt(job.url, asset.ContentType))
	if err := h.Store.Save(ctx, relPath, asset.Data); err != nil {
		out.err = fmt.Errorf("saving %s: %w", relPath, err)
		return out
	}

	img := &folio.Image{
		ProjectID:   job.projectID,
		SourceURL:   job.url,
		LocalPath:   path.Join(h.PublicPrefix, relPath),
		Kind:        job.kind,
		ContentType: asset.ContentType,
		ContentHash: ComputeHash(asset.Data),
		Size:        len(asset.Data),
		Position:    job.index,
		FetchedAt:   h.now(),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(asset.Data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}

	out.image = img
	out.bytes = int64(len(asset.Data))
	return out
}

// commit moves staged downloads into place so that the records written
// afterwards never point at missing files. With nothing downloaded the
// staging area is discarded instead.
func (h *Harvester) commit(ctx context.Context, images []*folio.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(images) == 0 {
		return h.Store.Abort()
	}
	if err := h.Store.Commit(); err != nil {
		return fmt.Errorf("committing images: %w", err)
	}
	return nil
}

// abortOnError discards staged downloads when a harvest fails. After a
// successful commit there is nothing left to discard.
func (h *Harvester) abortOnError(err *error) {
	if *err != nil && h.Store != nil {
		_ = h.Store.Abort()
	}
}

func (h *Harvester) recordImages(ctx context.Context, images []*folio.Image) error {
	if h.Images == nil {
		return nil
	}
	for _, img := range images {
		if err := h.Images.CreateImage(ctx, img); err != nil {
			return fmt.Errorf("recording image %s: %w", img.LocalPath, err)
		}
	}
	return nil
}

func (h *Harvester) limitedFetch(ctx context.Context, rawURL string) (string, error) {
	if err := waitForURL(ctx, h.RateLimiter, rawURL); err != nil {
		return "", err
	}
	return h.Fetcher.Fetch(ctx, rawURL)
}

// markSeen reports whether u is new to this Harvester and marks it seen.
func (h *Harvester) markSeen(u string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.seen == nil {
		h.seen = bloom.NewFilter(seenExpectedURLs, seenFalsePositiveRate)
	}
	return h.seen.Mark(u)
}

func (h *Harvester) concurrency() int {
	if h.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return h.Concurrency
}

func (h *Harvester) retryDelays() []time.Duration {
	if h.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return h.RetryDelays
}

func (h *Harvester) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// imageStem derives a file name stem from the last path segment of an
// image URL, falling back to a positional name.
func imageStem(rawURL string, index int) string {
	if u, err := url.Parse(rawURL); err == nil {
		name := path.Base(u.Path)
		if stem := folio.Slugify(strings.TrimSuffix(name, path.Ext(name))); stem != "" && stem != "." {
			return stem
		}
	}
	return fmt.Sprintf("image-%d", index+1)
}

// uniqueStem suffixes stem with -2, -3, ... until it is unused in dir.
func uniqueStem(used map[string]bool, dir, stem string) string {
	candidate := stem
	for n := 2; used[path.Join(dir, candidate)]; n++ {
		candidate = fmt.Sprintf("%s-%d", stem, n)
	}
	used[path.Join(dir, candidate)] = true
	return candidate
}
