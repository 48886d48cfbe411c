package ratelimiter

const queueSize = 100
