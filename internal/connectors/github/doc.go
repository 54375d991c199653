// Package github reads repository contents from GitHub.
//
// It provides a [Host] that implements both [driven.RepositoryHost] and
// [driven.FileTransport] on top of go-github:
//
//   - Host.GetRepo resolves "owner/name" to a [Repository] handle.
//   - Repository.GetContents lists one folder of the default branch.
//   - Host.Fetch downloads the raw bytes behind an entry's download URL.
//
// # Authentication
//
// GITHUB_TOKEN is optional. Without it requests are anonymous and limited
// to 60 API calls per hour, which is enough for small documentation trees.
// With a token the limit is 5,000 per hour and private repositories work.
//
// # Rate Limiting
//
// Every API call goes through a [RateLimiter] that throttles proactively
// with a token bucket and waits for the reset time when the remaining
// quota reported by GitHub falls below a reserve. Raw downloads are not
// counted against the API quota and bypass the limiter.
//
// # Enterprise
//
// GITHUB_API_URL points the client at a GitHub Enterprise API root.
package github
