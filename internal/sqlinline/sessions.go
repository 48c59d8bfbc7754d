package sqlinline

const QInsertSession = `--sql cc413e55-3f1a-46d3-b3f8-710d70181e81
insert into sessions(id, product_id, variant_id, locale, country, status, created_at, updated_at, expires_at)
values (gen_random_uuid(), $1::uuid, null, $2::text, nullif($3::text, ''), 'active', now(), now(), now() + $4::interval)
returning id, created_at, expires_at;
`

const QSelectSessionByID = `--sql 97bd678d-9153-47f7-a7d1-23a6f7977b7e
select id, product_id, coalesce(variant_id::text, ''), locale, coalesce(country, ''), status, created_at, updated_at, expires_at
from sessions
where id = $1::uuid
limit 1;
`

const QUpdateSessionVariant = `--sql 3e6105ca-f167-4ec4-8345-e199da8244cf
update sessions
set variant_id = $2::uuid, updated_at = now()
where id = $1::uuid and status = 'active'
returning id;
`

const QMarkSessionSubmitted = `--sql 78192684-72ed-49c3-86d0-64a60004dbea
update sessions
set status = 'submitted', updated_at = now()
where id = $1::uuid and status = 'active'
returning id;
`

const QTouchSession = `--sql d80aea9d-c5bd-48bf-9b53-02aa20c474f7
update sessions
set updated_at = now(), expires_at = now() + $2::interval
where id = $1::uuid and status = 'active';
`
