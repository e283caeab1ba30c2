package mediseek

import (
	"context"
	"net/http"
)

// cachedResponseKey is the request metadata slot the cache request
// interceptor fills on a hit.
const cachedResponseKey = "cached_response"

// CachedResponse returns the response a cache hit attached to req, or nil.
// The transport checks this after running request interceptors and serves
// the cached body without touching the network.
func CachedResponse(req *Request) *Response {
	if req.Metadata == nil {
		return nil
	}

	resp, _ := req.Metadata[cachedResponseKey].(*Response)

	return resp
}

// requestCacheKey derives the cache key for an intercepted request. The
// query string is already canonical, so the result matches
// CacheManager.GetCacheKey for the same method, path, and parameters.
func requestCacheKey(req *Request) string {
	key := req.Method + ":" + req.Path
	if req.Query != "" {
		key += ":" + req.Query
	}

	return key
}

// CacheInterceptor bridges a CacheManager into the transport. The request
// interceptor serves policy-eligible requests from cache; the response
// interceptor stores cacheable responses, keeping any ETag for later
// conditional revalidation.
func CacheInterceptor(manager *CacheManager, policy *CachingPolicy) (RequestInterceptor, ResponseInterceptor) {
	if policy == nil {
		policy = DefaultCachingPolicy()
	}

	requestInterceptor := func(ctx context.Context, req *Request) error {
		if !policy.ShouldCache(req.Method, req.Path, http.StatusOK) {
			return nil
		}

		data, err := manager.Get(ctx, requestCacheKey(req))
		if err != nil {
			// Miss or disabled backend; the request goes to the network.
			return nil
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[cachedResponseKey] = &Response{
			StatusCode: http.StatusOK,
			Headers:    make(http.Header),
			Body:       data,
		}

		return nil
	}

	responseInterceptor := func(ctx context.Context, req *Request, resp *Response) error {
		if CachedResponse(req) != nil {
			return nil
		}

		if !policy.ShouldCache(req.Method, req.Path, resp.StatusCode) {
			return nil
		}

		return manager.SetWithETag(ctx, requestCacheKey(req), resp.Body, resp.Headers.Get("ETag"), 0)
	}

	return requestInterceptor, responseInterceptor
}

// ConditionalRequestInterceptor adds If-None-Match headers for GET requests
// whose cached entry carries an ETag.
func ConditionalRequestInterceptor(manager *CacheManager) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Method != http.MethodGet {
			return nil
		}

		entry, err := manager.cache.Get(ctx, requestCacheKey(req))
		if err != nil || entry.ETag == "" {
			return nil
		}

		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		req.Headers.Set("If-None-Match", entry.ETag)

		return nil
	}
}
