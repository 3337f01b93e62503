// Package catalog 包含视频目录的查询参数定义以及分组、精选、相关推荐等纯函数。
//
// 本包不访问数据库：所有函数都作用在已经查询出的视频序列上，
// 便于在没有存储的情况下做单元测试。空输入总是返回空结果而不是错误。
package catalog
